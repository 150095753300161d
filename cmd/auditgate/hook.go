package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run one subagent-completion hook invocation",
	Long: `Run auditgate as a subagent-completion hook.

The orchestrator writes a JSON descriptor to stdin:
  {"agent_id": "...", "agent_transcript_path": "..."}

The transcript is scanned for the pipeline agent that just completed; if
one is found, its gate runs against the artifacts under the project root.
A violation is reported as a JSON block decision on stdout:
  {"decision": "block", "reason": "GATE B FAILED: ..."}

The exit code is always zero. Anything that goes wrong inside the
validator itself fails open: the hook stays silent and the pipeline
proceeds. Diagnostics go to stderr only.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()
		defer log.Sync()
		hook.Execute(os.Stdin, os.Stdout, projectRoot(), log)
	},
}
