package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/config"
	"github.com/ShayCichocki/auditgate/internal/exec"
	"github.com/ShayCichocki/auditgate/internal/gates"
	"github.com/ShayCichocki/auditgate/internal/pipeline"
	"github.com/ShayCichocki/auditgate/internal/runner"
	"github.com/ShayCichocki/auditgate/internal/session"
)

var (
	runFrom    string
	runNoRetry bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the audit pipeline stage by stage",
	Long: `Run the full pipeline: for each stage, invoke the configured agent CLI
with its prompt, then run the stage's gate against the artifacts it
produced.

Prompts live under prompts/<agent>.md at the project root, named after
the agent without the namespace (e.g. prompts/spec-author.md). Stages
with no prompt file are skipped. Each run gets a fresh id and its own
transcript directory under .task/.

A gate block re-prompts the agent once with the block reason appended;
a second block halts the run (warn-only gates log and continue).

Examples:
  auditgate run                      # all stages from the top
  auditgate run --from implementer   # resume from a named stage
  auditgate run --no-retry           # halt on first block`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runFrom, "from", "", "Start from the named agent (without namespace)")
	runCmd.Flags().BoolVar(&runNoRetry, "no-retry", false, "Halt on first block instead of re-prompting once")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	log := newLogger()
	defer log.Sync()

	cfg := config.Load(root)
	layout := artifact.NewLayout(root)

	runID := uuid.NewString()
	runDir := layout.RunDir(runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}

	sessions, err := session.OpenProject(root)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sessions.Close()

	r := runner.New(exec.NewRunner(), sessions, cfg.Runner, log)
	v := gates.New(root, log)
	reg := pipeline.Load(root)

	fmt.Printf("Run %s\n\n", runID)

	started := runFrom == ""
	for _, stage := range reg.Stages() {
		short := strings.TrimPrefix(stage.Agent, pipeline.AgentNamespace)
		if !started {
			if short != runFrom {
				continue
			}
			started = true
		}
		if err := runStage(cmd.Context(), r, v, root, runDir, stage, log); err != nil {
			return err
		}
	}
	if !started {
		return fmt.Errorf("no stage named %q", runFrom)
	}

	printStatus("✓", "pipeline complete", color.FgGreen)
	return nil
}

// runStage invokes one stage's agent and then its gate. A strict block
// re-prompts the agent once with the reason appended before halting.
func runStage(ctx context.Context, r *runner.Runner, v *gates.Validator, root, runDir string, stage pipeline.Stage, log *zap.Logger) error {
	short := strings.TrimPrefix(stage.Agent, pipeline.AgentNamespace)

	prompt, err := os.ReadFile(filepath.Join(root, "prompts", short+".md"))
	if err != nil {
		printStatus("⚠", fmt.Sprintf("%s: no prompt, skipping", short), color.FgYellow)
		return nil
	}

	attempts := 1
	if !runNoRetry {
		attempts = 2
	}

	text := string(prompt)
	for attempt := 1; attempt <= attempts; attempt++ {
		fmt.Printf("→ %s (gate %s)\n", short, stage.Gate)

		out, err := invokeAgent(ctx, r, root, stage, text)
		if err != nil {
			return fmt.Errorf("stage %s: %w", short, err)
		}
		logPath := filepath.Join(runDir, fmt.Sprintf("%s-%d.log", short, attempt))
		if err := os.WriteFile(logPath, []byte(out), 0o644); err != nil {
			log.Warn("could not save stage transcript", zap.String("path", logPath), zap.Error(err))
		}

		blk, err := v.Run(stage.Gate)
		if err != nil {
			return fmt.Errorf("gate %s: %w", stage.Gate, err)
		}
		if blk == nil {
			printStatus("✓", fmt.Sprintf("gate %s passed", stage.Gate), color.FgGreen)
			return nil
		}
		if !v.Strict(stage.Gate) {
			printStatus("⚠", blk.Reason, color.FgYellow)
			return nil
		}

		printStatus("✗", blk.Reason, color.FgRed)
		if attempt < attempts {
			fmt.Printf("  re-prompting %s once\n", short)
			text = string(prompt) + "\n\nYour previous attempt was rejected:\n" + blk.Reason + "\nFix the artifacts and try again.\n"
			continue
		}
		return fmt.Errorf("stage %s blocked by gate %s", short, stage.Gate)
	}
	return nil
}

// invokeAgent routes the stage to the CLI it runs on.
func invokeAgent(ctx context.Context, r *runner.Runner, root string, stage pipeline.Stage, prompt string) (string, error) {
	if stage.RunsOnCodex() {
		return r.RunCodex(ctx, root, prompt)
	}
	return r.RunClaude(ctx, root, prompt)
}
