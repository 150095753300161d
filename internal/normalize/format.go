package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ShayCichocki/auditgate/pkg/models"
)

// A documented detector failure mode is reporting a thematic category
// summary ("Access Control Issues") instead of one concrete bug at one
// location. Downstream grading cannot attribute a category label to the
// specific bug it might contain, so such titles are rejected.
var (
	// vagueLeadRe matches titles opening with a catch-all qualifier.
	vagueLeadRe = regexp.MustCompile(`(?i)^(various|general|overall|miscellaneous)\b`)
	// multiLeadRe matches titles opening with a plurality qualifier.
	multiLeadRe = regexp.MustCompile(`(?i)^(multiple|several)\b`)
	// pluralTailRe matches titles closing on a bare plural noun.
	pluralTailRe = regexp.MustCompile(`(?i)\b(issues|concerns|problems|vulnerabilities|weaknesses|risks)\s*$`)
	// locationRefRe detects a concrete function or file reference, e.g.
	// "in Vault.withdraw" or "via transfer(". Its presence rescues titles
	// that would otherwise look thematic.
	locationRefRe = regexp.MustCompile(`(?i)\b(in|at|of|via)\s+\w+[.(]`)
)

// IsThematicTitle reports whether a finding title reads as a thematic
// category label rather than a description of one concrete bug. Matching is
// word-boundary precise: "Tissue damage in contract" does not trip the
// "issue" detector.
func IsThematicTitle(title string) bool {
	t := strings.TrimSpace(title)
	if t == "" {
		return false
	}
	if vagueLeadRe.MatchString(t) {
		return true
	}
	if multiLeadRe.MatchString(t) && !locationRefRe.MatchString(t) {
		return true
	}
	if pluralTailRe.MatchString(t) && !locationRefRe.MatchString(t) {
		return true
	}
	return false
}

// ValidatePerVulnFormat checks that every finding describes one concrete
// bug at one location. It walks the findings in order and returns the first
// violation found: per-finding errors are positional and sequential, so
// reporting them one at a time gives the producing agent a single concrete
// fix per turn. Returns nil when every finding is well-formed.
func ValidatePerVulnFormat(findings []models.Finding) error {
	for i, f := range findings {
		label := f.ID
		if label == "" {
			label = fmt.Sprintf("finding[%d]", i)
		}
		switch {
		case f.ID == "":
			return fmt.Errorf("%s: missing id", label)
		case !f.HasLocation():
			return fmt.Errorf("%s: missing location (need file or affected)", label)
		case f.Severity == "":
			return fmt.Errorf("%s: missing severity", label)
		case IsThematicTitle(f.Title):
			return fmt.Errorf("%s: thematic title %q; report one concrete bug at one location", label, f.Title)
		}
	}
	return nil
}
