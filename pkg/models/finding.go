package models

// Finding represents one distinct vulnerability or review observation
// reported by a detection-stage agent.
type Finding struct {
	// ID is unique within the artifact that produced the finding.
	ID string `json:"id"`
	// File is the source file the finding points at.
	File string `json:"file,omitempty"`
	// Affected is an alternate location reference (contract or function name).
	// At least one of File or Affected must be set.
	Affected string `json:"affected,omitempty"`
	// Line is the 1-based line number within File, when known.
	Line int `json:"line,omitempty"`
	// Severity is the canonical severity (critical..info).
	Severity Severity `json:"severity"`
	// Title is a short description of the specific bug. Thematic category
	// labels ("Access Control Issues") are rejected by validation.
	Title string `json:"title"`
	// Description provides detail beyond the title.
	Description string `json:"description,omitempty"`
}

// HasLocation returns true if the finding carries any location reference.
func (f Finding) HasLocation() bool {
	return f.File != "" || f.Affected != ""
}

// Invariant is a named formal property the audited system must uphold,
// declared in the threat model and mapped to tests in the test plan.
type Invariant struct {
	// ID is a category-prefixed identifier such as IC-1 or IT-3.
	ID string `json:"id"`
	// Description explains the property in prose.
	Description string `json:"description"`
	// Category is the single-letter category code: C (conservation),
	// S (consistency), A (access), T (temporal), B (bound).
	Category string `json:"category,omitempty"`
}

// AcceptanceCriterion is a checkable requirement from the user stories,
// referenced by review coverage mappings via its ID.
type AcceptanceCriterion struct {
	// ID is prefixed AC-SEC- or AC-FUNC-.
	ID string `json:"id"`
	// Description states the requirement.
	Description string `json:"description"`
	// Measurable records whether the description is objectively checkable.
	Measurable bool `json:"measurable"`
}
