package gates

import (
	"regexp"
	"strings"
	"time"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/normalize"
)

// decisionRe extracts the reviewer's verdict line from a review document.
var decisionRe = regexp.MustCompile(`(?im)^\s*\**Decision\**\s*:\s*(.+)$`)

// reviewDecisions is the allowed verdict vocabulary.
var reviewDecisions = map[string]bool{
	"APPROVED":                 true,
	"APPROVED_WITH_CONDITIONS": true,
	"REJECTED":                 true,
}

// parseDecision extracts and canonicalizes the Decision line of a review
// document. Returns "" when no such line exists.
func parseDecision(doc string) string {
	m := decisionRe.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	d := strings.ToUpper(strings.Trim(strings.TrimSpace(m[1]), "*"))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(d)
}

// checkReviewDoc validates the shared review-document shape: the document
// exists, carries a recognized Decision line, and contains each required
// section heading.
func checkReviewDoc(gate, path string, headings []string) (string, *Block) {
	doc, blk := readDoc(gate, path)
	if blk != nil {
		return "", blk
	}
	decision := parseDecision(doc)
	if decision == "" {
		return "", blockf(gate, "review %s has no 'Decision:' line", path)
	}
	if !reviewDecisions[decision] {
		return "", blockf(gate, "review %s has unrecognized decision %q (expected APPROVED, APPROVED_WITH_CONDITIONS, or REJECTED)", path, decision)
	}
	for _, h := range headings {
		if !strings.Contains(doc, h) {
			return "", blockf(gate, "review %s is missing the %q section", path, h)
		}
	}
	return decision, nil
}

// companionJSON resolves and loads the review's companion JSON artifact:
// the most recently written of the stage's candidate files.
func (v *Validator) companionJSON(gate, stagePrefix string) (any, *Block) {
	candidates := v.Layout.ReviewJSONCandidates(stagePrefix)
	path, ok := v.Resolver.ResolveJustWritten(candidates, time.Time{})
	if !ok {
		return nil, blockf(gate, "no companion artifact matching %s*.json under %s", stagePrefix, v.Layout.TaskDir())
	}
	doc := normalize.ReadArtifact(path)
	if doc == nil {
		return nil, blockf(gate, "companion artifact %s is not valid JSON", path)
	}
	return doc, nil
}

// SpecComplianceReview is gate C: the stage-3 reviewer produced a
// well-formed spec-compliance review with its companion artifact.
func (v *Validator) SpecComplianceReview() (*Block, error) {
	const gate = "C"
	if _, blk := checkReviewDoc(gate, v.Layout.Stage3Review(), []string{"## Specification Compliance", "## Findings"}); blk != nil {
		return blk, nil
	}
	if _, blk := v.companionJSON(gate, "stage3-review"); blk != nil {
		return blk, nil
	}
	return nil, nil
}

// ExploitHuntReview is gate D: the stage-4 reviewer produced a well-formed
// exploit-hunt review whose findings each describe one concrete bug at one
// location.
func (v *Validator) ExploitHuntReview() (*Block, error) {
	const gate = "D"
	if _, blk := checkReviewDoc(gate, v.Layout.Stage4Review(), []string{"## Attack Surface", "## Exploit Attempts"}); blk != nil {
		return blk, nil
	}
	doc, blk := v.companionJSON(gate, "stage4-review")
	if blk != nil {
		return blk, nil
	}
	findings := normalize.DeduplicateByLocation(artifact.FindingsField(doc, "findings"))
	if err := normalize.ValidatePerVulnFormat(findings); err != nil {
		return blockf(gate, "findings are not in per-vulnerability format: %v", err), nil
	}
	return nil, nil
}

// FinalApproval is gate F: the final review's decision must be exactly
// APPROVED, with a residual-risk section and its companion artifact.
func (v *Validator) FinalApproval() (*Block, error) {
	const gate = "F"
	decision, blk := checkReviewDoc(gate, v.Layout.FinalReview(), []string{"## Residual Risk"})
	if blk != nil {
		return blk, nil
	}
	if decision != "APPROVED" {
		return blockf(gate, "final review decision is %s; only APPROVED releases the pipeline", decision), nil
	}
	if !artifact.Exists(v.Layout.FinalReviewJSON()) {
		return blockf(gate, "companion artifact %s is missing", v.Layout.FinalReviewJSON()), nil
	}
	return nil, nil
}
