package models

import "strings"

// IssueStatus represents the remediation state of a red-team issue.
type IssueStatus string

const (
	// IssueOpen indicates the issue has not been fixed.
	IssueOpen IssueStatus = "OPEN"
	// IssueFixedPendingVerify indicates a fix landed but has not been re-verified.
	// Failed re-verification regresses the issue back to OPEN.
	IssueFixedPendingVerify IssueStatus = "FIXED_PENDING_VERIFY"
	// IssueClosed indicates the fix was verified. Terminal in practice,
	// though the state machine does not forbid regression.
	IssueClosed IssueStatus = "CLOSED"
)

// Valid returns true if the status is a known value.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueOpen, IssueFixedPendingVerify, IssueClosed:
		return true
	default:
		return false
	}
}

// IssueSeverity is the severity vocabulary of the red-team issue log.
// It is coarser than Finding severity: HIGH, MED, LOW.
type IssueSeverity string

const (
	// IssueSeverityHigh marks an issue that must be closed before the final gate.
	IssueSeverityHigh IssueSeverity = "HIGH"
	// IssueSeverityMed marks an issue that must be closed before the final gate.
	IssueSeverityMed IssueSeverity = "MED"
	// IssueSeverityLow marks an issue exempt from the closure requirement.
	IssueSeverityLow IssueSeverity = "LOW"
)

// Valid returns true if the severity is a known value.
func (s IssueSeverity) Valid() bool {
	switch s {
	case IssueSeverityHigh, IssueSeverityMed, IssueSeverityLow:
		return true
	default:
		return false
	}
}

// Blocking returns true for severities that must reach CLOSED before the
// pipeline's final gate.
func (s IssueSeverity) Blocking() bool {
	return s == IssueSeverityHigh || s == IssueSeverityMed
}

// ParseIssueSeverity canonicalizes a free-text issue severity.
// Unrecognized input is returned uppercased and unchanged.
func ParseIssueSeverity(raw string) IssueSeverity {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(upper, "HI"), strings.HasPrefix(upper, "CRIT"):
		return IssueSeverityHigh
	case strings.HasPrefix(upper, "MED"):
		return IssueSeverityMed
	case strings.HasPrefix(upper, "LO"):
		return IssueSeverityLow
	default:
		return IssueSeverity(upper)
	}
}

// Issue is one entry in the red-team issue log: a HIGH/MED finding tracked
// through remediation. The closure gate requires every blocking issue to be
// CLOSED with a verified regression test.
type Issue struct {
	// ID is the RT-prefixed identifier, e.g. RT-001.
	ID string `json:"id"`
	// Severity is HIGH, MED, or LOW.
	Severity IssueSeverity `json:"severity"`
	// Title is a short description of the issue.
	Title string `json:"title"`
	// Status is the remediation state.
	Status IssueStatus `json:"status"`
	// RegressionTest references the test guarding against reintroduction,
	// e.g. test/Vault.t.sol::test_withdraw_reentrancy. Required once the
	// issue leaves OPEN. Placeholder values ("pending", "-") do not count.
	RegressionTest string `json:"regressionTest,omitempty"`
	// TestVerified records whether the regression test was confirmed to fail
	// before the fix and pass after it.
	TestVerified bool `json:"testVerified"`
}

// HasRegressionTest returns true when the issue references a concrete
// regression test rather than a placeholder.
func (i Issue) HasRegressionTest() bool {
	ref := strings.TrimSpace(i.RegressionTest)
	switch strings.ToLower(ref) {
	case "", "-", "pending", "tbd", "n/a":
		return false
	default:
		return true
	}
}
