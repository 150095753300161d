package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/bundle"
	"github.com/ShayCichocki/auditgate/internal/config"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle <kind> [dir]",
	Short: "Check a review bundle for blindness violations",
	Long: `Check that a review bundle contains nothing its reviewer must not see.

Kinds:
  no-code      spec-compliance review: no contract source
  no-spec      blind exploit hunt: no specification prose
  no-attacker  defender bundle: no attacker-output markers
  no-defender  attacker bundle: no defender-output markers

The dir argument defaults to the project root. Every violation is
reported, not just the first. Whether violations fail the command is
controlled by audit.blind_enforcement in auditgate.json.

Examples:
  auditgate bundle no-code ./bundles/spec-review
  auditgate bundle no-spec ./bundles/exploit-hunt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBundle,
}

func runBundle(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	dir := root
	if len(args) > 1 {
		dir = args[1]
	}

	violations, err := bundle.Check(dir, bundle.Kind(args[0]))
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		printStatus("✓", fmt.Sprintf("bundle is clean for %s", args[0]), color.FgGreen)
		return nil
	}

	for _, v := range violations {
		printStatus("✗", v.String(), color.FgRed)
	}

	cfg := config.Load(root)
	if !cfg.Audit.BlindStrict() {
		printStatus("⚠", "blind enforcement is not strict; violations logged only", color.FgYellow)
		return nil
	}
	return fmt.Errorf("%d blindness violation(s)", len(violations))
}
