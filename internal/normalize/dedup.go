package normalize

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/auditgate/pkg/models"
)

// DeduplicateByLocation merges findings that point at the same (file, line)
// location, keeping the higher-severity copy of each collision. When two
// independent reviewers flag the same bug, the more severe assessment is
// trusted rather than averaging or keeping whichever came first. Findings
// without any location reference are never merged, including with each
// other. Relative order of the surviving findings follows first appearance.
func DeduplicateByLocation(findings []models.Finding) []models.Finding {
	type slot struct {
		index   int
		finding models.Finding
	}

	byLocation := make(map[string]*slot)
	out := make([]models.Finding, 0, len(findings))

	for _, f := range findings {
		if !f.HasLocation() {
			out = append(out, f)
			continue
		}

		key := locationKey(f)
		existing, ok := byLocation[key]
		if !ok {
			out = append(out, f)
			byLocation[key] = &slot{index: len(out) - 1, finding: f}
			continue
		}

		if f.Severity.Rank() > existing.finding.Severity.Rank() {
			existing.finding = f
			out[existing.index] = f
		}
	}

	return out
}

// locationKey builds the collision key for a finding: lowercased
// "file:line", falling back to the affected reference when no file is set.
func locationKey(f models.Finding) string {
	loc := f.File
	if loc == "" {
		loc = f.Affected
	}
	return strings.ToLower(fmt.Sprintf("%s:%d", loc, f.Line))
}
