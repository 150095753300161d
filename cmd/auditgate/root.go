package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/logging"
)

var (
	flagRoot    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "auditgate",
	Short: "Stage gate validator for blind smart-contract audits",
	Long: `Auditgate validates the artifacts a multi-stage blind audit pipeline
produces: threat models, test evidence, review documents, red-team issue
logs, and their companion JSON files.

Each pipeline stage is an LLM agent; after an agent completes, its gate
inspects the artifacts on disk and either passes or blocks with a reason
the agent can act on. Auditgate never performs the analysis itself - it
enforces structure around the agents that do.

Common usage:
  auditgate hook          # run as a subagent-completion hook (stdin/stdout)
  auditgate validate      # run every gate against the current artifacts
  auditgate run           # drive the full pipeline stage by stage
  auditgate status --tui  # live per-gate dashboard`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Project root (default: $AUDITGATE_ROOT or cwd)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging to stderr")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// projectRoot resolves the project root: the --root flag when given,
// otherwise the environment override or the working directory.
func projectRoot() string {
	if flagRoot != "" {
		return flagRoot
	}
	return artifact.DetectRoot()
}

// newLogger builds the stderr logger shared by all commands. Stdout is
// reserved for command output and hook decisions.
func newLogger() *zap.Logger {
	log, err := logging.New(flagVerbose)
	if err != nil {
		return logging.NewNop()
	}
	return log
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
