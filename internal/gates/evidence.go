package gates

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ShayCichocki/auditgate/internal/artifact"
)

var (
	// fuzzRunsRe extracts the reported fuzz iteration count from the
	// test-run log.
	fuzzRunsRe = regexp.MustCompile(`(?i)fuzz_runs:\s*(\d+)`)
	// invariantFailRe marks an invariant test failure in the invariant log.
	invariantFailRe = regexp.MustCompile(`violated|FAILED`)
)

// Evidence is gate B: the implementation stage must leave behind proof
// that tests actually ran. The test-run log check is deliberately loose --
// it blocks only when failures appear with zero passes, so an unfamiliar
// log format cannot block a healthy run.
func (v *Validator) Evidence() (*Block, error) {
	const gate = "B"

	logPath := v.Layout.TestRunLog()
	data, err := os.ReadFile(logPath)
	if err != nil {
		return blockf(gate, "test run log %s is missing; run the test suite and save its output there", logPath), nil
	}
	text := string(data)

	fails := strings.Count(text, "[FAIL")
	passes := strings.Count(text, "[PASS")
	if fails > 0 && passes == 0 {
		return blockf(gate, "test run log %s shows %d failures and no passes", logPath, fails), nil
	}

	if min := v.Cfg.Audit.MinFuzzRuns; min > 0 {
		// A log that reports no count at all is not blocked; only an
		// explicit count below the floor is.
		if m := fuzzRunsRe.FindStringSubmatch(text); m != nil {
			runs, convErr := strconv.Atoi(m[1])
			if convErr == nil && runs < min {
				return blockf(gate, "fuzz_runs %d is below the configured minimum %d", runs, min), nil
			}
		}
	}

	if v.Cfg.Audit.EnableInvariants {
		invPath := v.Layout.InvariantTestsLog()
		invData, invErr := os.ReadFile(invPath)
		if invErr != nil {
			return blockf(gate, "invariant test log %s is missing", invPath), nil
		}
		if m := invariantFailRe.FindString(string(invData)); m != "" {
			return blockf(gate, "invariant test log %s reports %q", invPath, m), nil
		}
	}

	if v.Cfg.Audit.RequireSlither && !artifact.Exists(v.Layout.SlitherReport()) {
		return blockf(gate, "static analysis report %s is missing", v.Layout.SlitherReport()), nil
	}

	for _, candidate := range v.Layout.GasSnapshotCandidates() {
		if artifact.Exists(candidate) {
			return nil, nil
		}
	}
	return blockf(gate, "no gas snapshot found (expected one of %s)", strings.Join(v.Layout.GasSnapshotCandidates(), ", ")), nil
}
