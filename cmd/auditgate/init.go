package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize an audit project",
	Long: `Set up a directory for the blind audit pipeline.

Creates the artifact layout the gates expect:
  docs/{security,architecture,testing,reviews,performance}/
  reports/
  .task/
  prompts/
plus a default auditgate.json.

The directory argument is optional and defaults to the current directory.

Examples:
  auditgate init              # initialize current directory
  auditgate init ./audit      # initialize a specific directory
  auditgate init --force      # rewrite auditgate.json even if present`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing auditgate.json")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}
	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	fmt.Printf("Initializing audit project in %s...\n\n", absPath)

	dirs := []string{
		filepath.Join("docs", "security"),
		filepath.Join("docs", "architecture"),
		filepath.Join("docs", "testing"),
		filepath.Join("docs", "reviews"),
		filepath.Join("docs", "performance"),
		"reports",
		".task",
		"prompts",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(absPath, d), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}
	printStatus("✓", "Created artifact directories", color.FgGreen)

	created, err := writeDefaultConfig(absPath)
	if err != nil {
		return err
	}
	if created {
		printStatus("✓", "Created default auditgate.json", color.FgGreen)
	} else {
		printStatus("✓", "Kept existing auditgate.json (use --force to rewrite)", color.FgGreen)
	}

	checkCLIs(config.Load(absPath))

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Drop agent prompts into prompts/ (e.g. prompts/spec-author.md)")
	fmt.Println("  2. Run the pipeline:")
	fmt.Println("     auditgate run")
	fmt.Println("  3. Or validate artifacts produced elsewhere:")
	fmt.Println("     auditgate validate")
	return nil
}

// writeDefaultConfig writes auditgate.json with default values unless one
// already exists. Returns whether a file was written.
func writeDefaultConfig(root string) (bool, error) {
	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil && !initForce {
		return false, nil
	}

	// Durations are written as strings so the file round-trips through
	// time.ParseDuration.
	defaults := map[string]any{
		"audit": map[string]any{
			"gate_strictness":          "high",
			"enable_invariants":        false,
			"require_slither":          false,
			"min_fuzz_runs":            0,
			"blind_enforcement":        "strict",
			"require_regression_tests": true,
		},
		"review": map[string]any{
			"gate_strictness":     "high",
			"require_ac_coverage": true,
		},
		"runner": map[string]any{
			"claude_bin":    "claude",
			"codex_bin":     "codex",
			"stage_timeout": "30m",
			"session_ttl":   "2h",
		},
	}

	data, err := json.MarshalIndent(defaults, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", config.FileName, err)
	}
	return true, nil
}

// checkCLIs reports whether the configured agent CLIs are on PATH. Missing
// CLIs are a warning, not an error: validate and hook work without them.
func checkCLIs(cfg *config.Config) {
	for _, bin := range []string{cfg.Runner.ClaudeBin, cfg.Runner.CodexBin} {
		if _, err := exec.LookPath(bin); err != nil {
			printStatus("⚠", fmt.Sprintf("%s not found in PATH (needed for 'auditgate run')", bin), color.FgYellow)
		} else {
			printStatus("✓", fmt.Sprintf("%s found", bin), color.FgGreen)
		}
	}
}
