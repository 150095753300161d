package models

import "strings"

// Severity represents the canonical severity of a finding.
type Severity string

const (
	// SeverityCritical indicates a directly exploitable, funds-at-risk issue.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates a serious issue requiring remediation before release.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates an issue that should be fixed but is not release-blocking on its own.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates a minor issue.
	SeverityLow Severity = "low"
	// SeverityInfo indicates an informational observation.
	SeverityInfo Severity = "info"
)

// severityPrefixes maps abbreviation prefixes to canonical severities.
// Order matters: prefixes are tried first to last, and LLM output like
// "Hi", "HIGH", or "crit" must all land on the same canonical value.
var severityPrefixes = []struct {
	prefix string
	value  Severity
}{
	{"crit", SeverityCritical},
	{"hi", SeverityHigh},
	{"med", SeverityMedium},
	{"lo", SeverityLow},
	{"inf", SeverityInfo},
}

// Valid returns true if the severity is a known canonical value.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank returns the ordering rank of a severity: critical=4 down to info=0.
// Unknown severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	case SeverityInfo:
		return 0
	default:
		return -1
	}
}

// ParseSeverity canonicalizes a free-text severity string via fuzzy prefix
// matching. Strings that match no known prefix are returned lowercased and
// unchanged, so the result is not guaranteed to be Valid.
func ParseSeverity(raw string) Severity {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range severityPrefixes {
		if strings.HasPrefix(trimmed, p.prefix) {
			return p.value
		}
	}
	return Severity(trimmed)
}

// MaxSeverity returns the higher-ranked of two severities. When ranks tie,
// the first argument wins.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
