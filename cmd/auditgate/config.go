package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show resolved configuration",
	Long: `Display the configuration in effect for the project root, after
defaults and auditgate.json are merged.

Without arguments, displays every value. With a key argument, displays
that value only.

Examples:
  auditgate config
  auditgate config audit.gate_strictness`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(projectRoot())
		if len(args) == 0 {
			displayAllConfig(cfg)
			return
		}
		value, err := configValue(cfg, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("audit.gate_strictness: %s\n", cfg.Audit.GateStrictness)
	fmt.Printf("audit.enable_invariants: %t\n", cfg.Audit.EnableInvariants)
	fmt.Printf("audit.require_slither: %t\n", cfg.Audit.RequireSlither)
	fmt.Printf("audit.min_fuzz_runs: %d\n", cfg.Audit.MinFuzzRuns)
	fmt.Printf("audit.blind_enforcement: %s\n", cfg.Audit.BlindEnforcement)
	fmt.Printf("audit.require_regression_tests: %t\n", cfg.Audit.RequireRegressionTests)
	fmt.Printf("review.gate_strictness: %s\n", cfg.Review.GateStrictness)
	fmt.Printf("review.require_ac_coverage: %t\n", cfg.Review.RequireACCoverage)
	fmt.Printf("runner.claude_bin: %s\n", cfg.Runner.ClaudeBin)
	fmt.Printf("runner.codex_bin: %s\n", cfg.Runner.CodexBin)
	fmt.Printf("runner.stage_timeout: %s\n", cfg.Runner.StageTimeout)
	fmt.Printf("runner.session_ttl: %s\n", cfg.Runner.SessionTTL)
}

// configValue retrieves a configuration value by dot-notation key.
func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "audit.gate_strictness":
		return cfg.Audit.GateStrictness, nil
	case "audit.enable_invariants":
		return strconv.FormatBool(cfg.Audit.EnableInvariants), nil
	case "audit.require_slither":
		return strconv.FormatBool(cfg.Audit.RequireSlither), nil
	case "audit.min_fuzz_runs":
		return strconv.Itoa(cfg.Audit.MinFuzzRuns), nil
	case "audit.blind_enforcement":
		return cfg.Audit.BlindEnforcement, nil
	case "audit.require_regression_tests":
		return strconv.FormatBool(cfg.Audit.RequireRegressionTests), nil
	case "review.gate_strictness":
		return cfg.Review.GateStrictness, nil
	case "review.require_ac_coverage":
		return strconv.FormatBool(cfg.Review.RequireACCoverage), nil
	case "runner.claude_bin":
		return cfg.Runner.ClaudeBin, nil
	case "runner.codex_bin":
		return cfg.Runner.CodexBin, nil
	case "runner.stage_timeout":
		return cfg.Runner.StageTimeout.String(), nil
	case "runner.session_ttl":
		return cfg.Runner.SessionTTL.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}
