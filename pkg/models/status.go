package models

// Status represents the canonical status of an artifact.
type Status string

const (
	// StatusApproved indicates the artifact passed review.
	StatusApproved Status = "approved"
	// StatusNeedsChanges indicates the reviewer requested changes.
	StatusNeedsChanges Status = "needs_changes"
	// StatusNeedsClarification indicates the reviewer could not decide.
	StatusNeedsClarification Status = "needs_clarification"
	// StatusRejected indicates the artifact was rejected outright.
	StatusRejected Status = "rejected"
	// StatusComplete indicates a producing stage finished.
	StatusComplete Status = "complete"
	// StatusOpen indicates tracked work that has not been addressed.
	StatusOpen Status = "open"
	// StatusClosed indicates tracked work that has been resolved.
	StatusClosed Status = "closed"
	// StatusPending indicates work that has not started.
	StatusPending Status = "pending"
)

// Valid returns true if the status is a known canonical value.
func (s Status) Valid() bool {
	switch s {
	case StatusApproved, StatusNeedsChanges, StatusNeedsClarification,
		StatusRejected, StatusComplete, StatusOpen, StatusClosed, StatusPending:
		return true
	default:
		return false
	}
}
