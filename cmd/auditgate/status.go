package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/config"
	"github.com/ShayCichocki/auditgate/internal/gates"
	"github.com/ShayCichocki/auditgate/internal/pipeline"
	"github.com/ShayCichocki/auditgate/internal/session"
	"github.com/ShayCichocki/auditgate/internal/tui"
)

var statusTUI bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-gate status for the current artifacts",
	Long: `Display a pass/block snapshot of every pipeline stage.

Shows each stage's agent, its gate, and whether the gate passes against
the artifacts currently on disk, plus the codex CLI session state.

With --tui, opens a live dashboard; press r to re-evaluate, q to quit.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusTUI, "tui", false, "Open the interactive dashboard")
}

func runStatus(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	log := newLogger()
	defer log.Sync()

	v := gates.New(root, log)
	reg := pipeline.Load(root)

	snapshot := func() []tui.GateRow { return gateSnapshot(v, reg) }
	if statusTUI {
		return tui.Run(snapshot(), snapshot)
	}

	for _, row := range snapshot() {
		switch row.Status {
		case "PASS":
			printStatus("✓", fmt.Sprintf("%-8s %s", row.Gate, row.Agent), color.FgGreen)
		case "BLOCK":
			printStatus("✗", fmt.Sprintf("%-8s %s: %s", row.Gate, row.Agent, row.Detail), color.FgRed)
		default:
			printStatus("⚠", fmt.Sprintf("%-8s %s: %s", row.Gate, row.Agent, row.Detail), color.FgYellow)
		}
	}

	fmt.Println()
	return displaySessionState(root)
}

// gateSnapshot runs each stage's gate once and maps results to rows.
// Stages sharing a gate reuse the first result.
func gateSnapshot(v *gates.Validator, reg *pipeline.Registry) []tui.GateRow {
	type result struct {
		blk *gates.Block
		err error
	}
	cache := make(map[string]result)

	var rows []tui.GateRow
	for _, s := range reg.Stages() {
		r, ok := cache[s.Gate]
		if !ok {
			blk, err := v.Run(s.Gate)
			r = result{blk: blk, err: err}
			cache[s.Gate] = r
		}

		row := tui.GateRow{Gate: s.Gate, Agent: s.Agent, Status: "PASS"}
		switch {
		case r.err != nil:
			row.Status = "ERROR"
			row.Detail = r.err.Error()
		case r.blk != nil:
			row.Status = "BLOCK"
			row.Detail = r.blk.Reason
		}
		rows = append(rows, row)
	}
	return rows
}

// displaySessionState prints the codex CLI session state, if a session
// store exists at all.
func displaySessionState(root string) error {
	if !artifact.Exists(session.StorePath(root)) {
		fmt.Println("Codex session: none")
		return nil
	}

	store, err := session.OpenProject(root)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	cfg := config.Load(root)
	state, rec, err := store.Lookup("codex", time.Now(), cfg.Runner.SessionTTL)
	if err != nil {
		return fmt.Errorf("lookup codex session: %w", err)
	}

	switch state {
	case session.Active:
		fmt.Printf("Codex session: active (%s, started %s ago)\n",
			rec.SessionID, time.Since(rec.StartedAt).Round(time.Second))
	case session.Expired:
		fmt.Printf("Codex session: expired (%s)\n", rec.SessionID)
	default:
		fmt.Println("Codex session: none")
	}
	return nil
}
