package gates

import (
	"strings"
	"time"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/normalize"
)

// ReviewKind selects which review-pipeline artifact the coverage gate
// validates.
type ReviewKind string

const (
	// PlanReview validates a plan-review artifact via its
	// requirements_coverage field and explicit missing list.
	PlanReview ReviewKind = "plan-review"
	// CodeReview validates a code-review artifact via its
	// acceptance_criteria_verification field and per-criterion statuses.
	CodeReview ReviewKind = "code-review"
)

// coverageField returns the coverage array key for the kind.
func (k ReviewKind) coverageField() string {
	if k == CodeReview {
		return "acceptance_criteria_verification"
	}
	return "requirements_coverage"
}

// incompleteStatuses are the per-criterion statuses that are incompatible
// with an approved code review.
var incompleteStatuses = map[string]bool{
	"not_implemented": true,
	"partial":         true,
}

// ACCoverage validates that a review artifact covers every acceptance
// criterion declared in the user stories, and that an approved verdict is
// never paired with known-incomplete coverage. Approval and known
// incompleteness are mutually exclusive here, not left to agent
// discretion.
func (v *Validator) ACCoverage(kind ReviewKind) (*Block, error) {
	const gate = "AC"

	if !v.Cfg.Review.RequireACCoverage {
		return nil, nil
	}

	stories := normalize.ReadArtifact(v.Layout.UserStories())
	if stories == nil {
		return blockf(gate, "user stories %s are missing or not valid JSON", v.Layout.UserStories()), nil
	}
	required := artifact.AcceptanceCriteriaIDs(stories)
	if len(required) == 0 {
		return nil, nil
	}

	candidates := v.Layout.ReviewJSONCandidates(string(kind))
	path, ok := v.Resolver.ResolveJustWritten(candidates, time.Time{})
	if !ok {
		return blockf(gate, "no %s artifact matching %s*.json under %s", kind, kind, v.Layout.TaskDir()), nil
	}
	doc := normalize.ReadArtifact(path)
	if doc == nil {
		return blockf(gate, "%s artifact %s is not valid JSON", kind, path), nil
	}

	entries := artifact.CoverageField(doc, kind.coverageField())
	if entries == nil {
		return blockf(gate, "%s artifact %s has no %s field", kind, path, kind.coverageField()), nil
	}
	covered := make(map[string]artifact.CoverageEntry, len(entries))
	for _, e := range entries {
		covered[e.ID] = e
	}

	var uncovered []string
	for _, id := range required {
		if _, ok := covered[id]; !ok {
			uncovered = append(uncovered, id)
		}
	}
	if len(uncovered) > 0 {
		return blockf(gate, "%s artifact %s does not cover acceptance criteria: %s", kind, path, strings.Join(uncovered, ", ")), nil
	}

	if artifact.StringField(doc, "status") != "approved" {
		return nil, nil
	}
	switch kind {
	case CodeReview:
		for _, id := range required {
			if incompleteStatuses[covered[id].Status] {
				return blockf(gate, "%s artifact %s is approved but %s is %s", kind, path, id, strings.ToUpper(covered[id].Status)), nil
			}
		}
	case PlanReview:
		if missing := artifact.StringsField(doc, "missing"); len(missing) > 0 {
			return blockf(gate, "%s artifact %s is approved but lists missing criteria: %s", kind, path, strings.Join(missing, ", ")), nil
		}
	}
	return nil, nil
}
