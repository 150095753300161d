// Package artifact locates and parses the pipeline's on-disk artifacts.
// There is no database; the file system is the data store, and every
// validator reads the same fixed layout rooted at the project directory.
package artifact

import (
	"os"
	"path/filepath"
)

// RootEnvVar overrides the project root when set. Hook invocations run in
// whatever working directory the orchestrator chose, so an explicit root
// keeps validators pointed at the right tree.
const RootEnvVar = "AUDITGATE_ROOT"

// DetectRoot resolves the project root: the env override if set, otherwise
// the current working directory. Falls back to "." when even the cwd is
// unavailable.
func DetectRoot() string {
	if root := os.Getenv(RootEnvVar); root != "" {
		return root
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// Layout maps the fixed artifact paths under a project root.
type Layout struct {
	// Root is the project directory all paths are relative to.
	Root string
}

// NewLayout creates a Layout rooted at the given directory.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// TaskDir is the machine-readable artifact directory.
func (l Layout) TaskDir() string { return filepath.Join(l.Root, ".task") }

// RunDir is the per-run artifact scope under the task directory.
func (l Layout) RunDir(runID string) string { return filepath.Join(l.TaskDir(), runID) }

// ReportsDir holds raw tool output: test logs, gas snapshots, static
// analysis reports.
func (l Layout) ReportsDir() string { return filepath.Join(l.Root, "reports") }

// ThreatModel is the security specification document.
func (l Layout) ThreatModel() string {
	return filepath.Join(l.Root, "docs", "security", "threat-model.md")
}

// DesignDoc is the architecture design document.
func (l Layout) DesignDoc() string {
	return filepath.Join(l.Root, "docs", "architecture", "design.md")
}

// TestPlan is the testing strategy document.
func (l Layout) TestPlan() string {
	return filepath.Join(l.Root, "docs", "testing", "test-plan.md")
}

// IssueLog is the red-team issue tracking document.
func (l Layout) IssueLog() string {
	return filepath.Join(l.Root, "docs", "security", "issue-log.md")
}

// ReviewDoc is a named review document under docs/reviews.
func (l Layout) ReviewDoc(name string) string {
	return filepath.Join(l.Root, "docs", "reviews", name)
}

// AdversarialReviews lists the detection-stage review documents the
// closure gate scans when no issue log exists.
func (l Layout) AdversarialReviews() []string {
	return []string{
		l.Stage4Review(),
		l.ReviewDoc("attack-plan-review.md"),
		l.ReviewDoc("exploit-hunt-review.md"),
		l.ReviewDoc("dispute-resolution-review.md"),
	}
}

// Stage3Review is the spec-compliance review document.
func (l Layout) Stage3Review() string { return l.ReviewDoc("stage3-review.md") }

// Stage4Review is the exploit-hunt review document.
func (l Layout) Stage4Review() string { return l.ReviewDoc("stage4-review.md") }

// FinalReview is the final approval review document.
func (l Layout) FinalReview() string { return l.ReviewDoc("final-review.md") }

// SpecComplete is the spec-completeness companion artifact.
func (l Layout) SpecComplete() string {
	return filepath.Join(l.TaskDir(), "spec-complete.json")
}

// UserStories holds the acceptance criteria the review pipeline must cover.
func (l Layout) UserStories() string {
	return filepath.Join(l.TaskDir(), "user-stories.json")
}

// FinalReviewJSON is the companion artifact for the final review document.
func (l Layout) FinalReviewJSON() string {
	return filepath.Join(l.TaskDir(), "final-review.json")
}

// ConsolidatedFindings returns every location the consolidated findings
// artifact may occupy: the flat path plus one per run-scoped subdirectory.
func (l Layout) ConsolidatedFindings() []string {
	paths := []string{filepath.Join(l.TaskDir(), "consolidated-findings.json")}
	entries, err := os.ReadDir(l.TaskDir())
	if err != nil {
		return paths
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(l.TaskDir(), e.Name(), "consolidated-findings.json"))
	}
	return paths
}

// ReviewJSONCandidates lists the companion JSON artifacts a review agent
// may have written for the given stage prefix, e.g. "stage3-review". Which
// candidate the triggering agent actually produced is decided by
// ResolveJustWritten.
func (l Layout) ReviewJSONCandidates(stagePrefix string) []string {
	matches, err := filepath.Glob(filepath.Join(l.TaskDir(), stagePrefix+"*.json"))
	if err != nil || len(matches) == 0 {
		return nil
	}
	return matches
}

// TestRunLog is the raw test execution log.
func (l Layout) TestRunLog() string { return filepath.Join(l.ReportsDir(), "test-run.log") }

// InvariantTestsLog is the invariant test execution log.
func (l Layout) InvariantTestsLog() string {
	return filepath.Join(l.ReportsDir(), "invariant-tests.log")
}

// SlitherReport is the static analysis report.
func (l Layout) SlitherReport() string { return filepath.Join(l.ReportsDir(), "slither.txt") }

// GasSnapshotCandidates lists the accepted gas snapshot locations. Any one
// of them satisfies the evidence gate.
func (l Layout) GasSnapshotCandidates() []string {
	return []string{
		filepath.Join(l.ReportsDir(), "gas-snapshot.txt"),
		filepath.Join(l.ReportsDir(), ".gas-snapshot"),
		filepath.Join(l.ReportsDir(), "gas-report.txt"),
	}
}

// Exists reports whether the file at path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// NonEmpty reports whether the file at path exists and has content.
func NonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}
