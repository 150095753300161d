package gates

import (
	"os"
	"regexp"
	"strings"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/normalize"
)

// invariantRowRe matches a test-plan table row that maps an invariant id,
// e.g. "| IC-1 | test_invariant_conservation |".
var invariantRowRe = regexp.MustCompile(`\|\s*I[CSATB]-\d+\s*\|`)

// SpecCompleteness is gate A: the specification documents exist, carry
// invariant and acceptance-criteria markers, the design doc commits to a
// storage layout, the test plan maps invariants to tests, and the
// companion artifact confirms no invariant was left unmapped.
func (v *Validator) SpecCompleteness() (*Block, error) {
	const gate = "A"

	threat, blk := readDoc(gate, v.Layout.ThreatModel())
	if blk != nil {
		return blk, nil
	}
	if len(artifact.InvariantMarkers(threat)) == 0 {
		return blockf(gate, "threat model %s declares no invariants (expected at least one IC-/IS-/IA-/IT-/IB- marker)", v.Layout.ThreatModel()), nil
	}
	if len(artifact.ACMarkers(threat)) == 0 {
		return blockf(gate, "threat model %s declares no acceptance criteria (expected at least one AC-SEC-/AC-FUNC- marker)", v.Layout.ThreatModel()), nil
	}

	design, blk := readDoc(gate, v.Layout.DesignDoc())
	if blk != nil {
		return blk, nil
	}
	if !strings.Contains(design, "## Storage Layout") {
		return blockf(gate, "design doc %s is missing the '## Storage Layout' section", v.Layout.DesignDoc()), nil
	}
	if !strings.Contains(design, "Slot |") {
		return blockf(gate, "design doc %s has no storage slot table (expected a 'Slot |' column header)", v.Layout.DesignDoc()), nil
	}

	plan, blk := readDoc(gate, v.Layout.TestPlan())
	if blk != nil {
		return blk, nil
	}
	if !invariantRowRe.MatchString(plan) {
		return blockf(gate, "test plan %s has no table row mapping an invariant id to a test", v.Layout.TestPlan()), nil
	}

	doc := normalize.ReadArtifact(v.Layout.SpecComplete())
	if doc == nil {
		return blockf(gate, "companion artifact %s is missing or not valid JSON", v.Layout.SpecComplete()), nil
	}
	if unmapped := artifact.StringsField(doc, "unmapped_invariants"); len(unmapped) > 0 {
		return blockf(gate, "invariants with no mapped test: %s", strings.Join(unmapped, ", ")), nil
	}

	return nil, nil
}

// readDoc loads a required Markdown document, translating absence or
// emptiness into a block naming the exact path.
func readDoc(gate, path string) (string, *Block) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", blockf(gate, "required document %s is missing", path)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", blockf(gate, "required document %s is empty", path)
	}
	return text, nil
}
