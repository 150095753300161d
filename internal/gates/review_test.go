package gates

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const stage3Doc = `# Stage 3 Review

Decision: APPROVED_WITH_CONDITIONS

## Specification Compliance
Matches the threat model.

## Findings
None blocking.
`

const stage4Doc = `# Stage 4 Review

**Decision**: APPROVED

## Attack Surface
External entry points enumerated.

## Exploit Attempts
All failed.
`

func TestSpecComplianceReview(t *testing.T) {
	t.Run("well formed passes", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage3-review.md", stage3Doc)
		writeArtifact(t, root, ".task/stage3-review.json", `{"status": "approved"}`)
		blk, err := v.SpecComplianceReview()
		wantPass(t, blk, err)
	})

	t.Run("missing document blocks", func(t *testing.T) {
		_, v := newProject(t)
		blk, err := v.SpecComplianceReview()
		wantBlock(t, blk, err, "GATE C FAILED", "stage3-review.md")
	})

	t.Run("no decision line blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage3-review.md", "# Review\n\n## Specification Compliance\n\n## Findings\n")
		blk, err := v.SpecComplianceReview()
		wantBlock(t, blk, err, "Decision")
	})

	t.Run("unrecognized decision blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage3-review.md", "Decision: MAYBE\n\n## Specification Compliance\n\n## Findings\n")
		blk, err := v.SpecComplianceReview()
		wantBlock(t, blk, err, "MAYBE")
	})

	t.Run("missing heading blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage3-review.md", "Decision: APPROVED\n\n## Findings\n")
		blk, err := v.SpecComplianceReview()
		wantBlock(t, blk, err, "Specification Compliance")
	})

	t.Run("missing companion artifact blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage3-review.md", stage3Doc)
		blk, err := v.SpecComplianceReview()
		wantBlock(t, blk, err, "companion")
	})

	t.Run("most recent companion wins", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage3-review.md", stage3Doc)
		writeArtifact(t, root, ".task/stage3-review-sonnet.json", `not json`)
		writeArtifact(t, root, ".task/stage3-review-opus.json", `{"status": "approved"}`)
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		mustChtimes(t, filepath.Join(root, ".task", "stage3-review-sonnet.json"), base.Add(time.Minute))
		mustChtimes(t, filepath.Join(root, ".task", "stage3-review-opus.json"), base)
		// The newer candidate is unparsable, so the gate must blame it
		// rather than silently validating the older one.
		blk, err := v.SpecComplianceReview()
		wantBlock(t, blk, err, "stage3-review-sonnet.json")

		mustChtimes(t, filepath.Join(root, ".task", "stage3-review-opus.json"), base.Add(2*time.Minute))
		blk, err = v.SpecComplianceReview()
		wantPass(t, blk, err)
	})
}

func TestExploitHuntReview(t *testing.T) {
	t.Run("well formed passes", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage4-review.md", stage4Doc)
		writeArtifact(t, root, ".task/stage4-review.json", `{
			"findings": [
				{"id": "VULN-1", "file": "Vault.sol", "line": 42, "severity": "high", "title": "Reentrancy in Vault.withdraw"}
			]
		}`)
		blk, err := v.ExploitHuntReview()
		wantPass(t, blk, err)
	})

	t.Run("thematic finding title blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage4-review.md", stage4Doc)
		writeArtifact(t, root, ".task/stage4-review.json", `{
			"findings": [
				{"id": "VULN-1", "file": "Vault.sol", "severity": "high", "title": "Access Control Issues"}
			]
		}`)
		blk, err := v.ExploitHuntReview()
		wantBlock(t, blk, err, "GATE D FAILED", "thematic")
	})

	t.Run("finding without location blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage4-review.md", stage4Doc)
		writeArtifact(t, root, ".task/stage4-review.json", `{
			"findings": [{"id": "VULN-1", "severity": "high", "title": "Reentrancy in Vault.withdraw"}]
		}`)
		blk, err := v.ExploitHuntReview()
		wantBlock(t, blk, err, "location")
	})

	t.Run("empty findings pass", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage4-review.md", stage4Doc)
		writeArtifact(t, root, ".task/stage4-review.json", `{"findings": []}`)
		blk, err := v.ExploitHuntReview()
		wantPass(t, blk, err)
	})

	t.Run("missing heading blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/stage4-review.md", "Decision: APPROVED\n\n## Attack Surface\n")
		blk, err := v.ExploitHuntReview()
		wantBlock(t, blk, err, "Exploit Attempts")
	})
}

func TestFinalApproval(t *testing.T) {
	writeFinal := func(t *testing.T, root, decision string) {
		writeArtifact(t, root, "docs/reviews/final-review.md", "Decision: "+decision+"\n\n## Residual Risk\nNone identified.\n")
		writeArtifact(t, root, ".task/final-review.json", `{"status": "approved"}`)
	}

	t.Run("approved passes", func(t *testing.T) {
		root, v := newProject(t)
		writeFinal(t, root, "APPROVED")
		blk, err := v.FinalApproval()
		wantPass(t, blk, err)
	})

	t.Run("conditional approval blocks", func(t *testing.T) {
		// Valid vocabulary elsewhere, but the final gate demands exactly
		// APPROVED.
		root, v := newProject(t)
		writeFinal(t, root, "APPROVED_WITH_CONDITIONS")
		blk, err := v.FinalApproval()
		wantBlock(t, blk, err, "GATE F FAILED", "APPROVED_WITH_CONDITIONS")
	})

	t.Run("rejected blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeFinal(t, root, "REJECTED")
		blk, err := v.FinalApproval()
		wantBlock(t, blk, err, "REJECTED")
	})

	t.Run("missing residual risk blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/final-review.md", "Decision: APPROVED\n")
		blk, err := v.FinalApproval()
		wantBlock(t, blk, err, "Residual Risk")
	})

	t.Run("missing companion blocks", func(t *testing.T) {
		root, v := newProject(t)
		writeArtifact(t, root, "docs/reviews/final-review.md", "Decision: APPROVED\n\n## Residual Risk\nNone.\n")
		blk, err := v.FinalApproval()
		wantBlock(t, blk, err, "final-review.json")
	})
}

func mustChtimes(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
