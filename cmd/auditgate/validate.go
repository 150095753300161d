package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/gates"
	"github.com/ShayCichocki/auditgate/internal/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate [gate...]",
	Short: "Run stage gates against the current artifacts",
	Long: `Run one or more gates against the artifacts under the project root.

With no arguments, every gate registered in the pipeline runs in stage
order. Gate ids: A-F for the audit pipeline, AC-PLAN and AC-CODE for the
review pipeline.

Examples:
  auditgate validate          # run every gate
  auditgate validate A        # spec completeness only
  auditgate validate B E      # evidence and red-team closure`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	log := newLogger()
	defer log.Sync()

	v := gates.New(root, log)
	ids := args
	if len(ids) == 0 {
		ids = gateOrder(pipeline.Load(root))
	}

	blocked := 0
	for _, id := range ids {
		blk, err := v.Run(id)
		switch {
		case err != nil:
			return fmt.Errorf("gate %s: %w", id, err)
		case blk != nil:
			printStatus("✗", blk.Reason, color.FgRed)
			if v.Strict(id) {
				blocked++
			}
		default:
			printStatus("✓", fmt.Sprintf("gate %s passed", id), color.FgGreen)
		}
	}

	if blocked > 0 {
		return fmt.Errorf("%d gate(s) blocked", blocked)
	}
	return nil
}

// gateOrder returns the distinct gate ids of a registry in stage order.
func gateOrder(reg *pipeline.Registry) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range reg.Stages() {
		if seen[s.Gate] {
			continue
		}
		seen[s.Gate] = true
		ids = append(ids, s.Gate)
	}
	return ids
}
