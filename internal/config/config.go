// Package config loads pipeline configuration for auditgate.
// Configuration lives in an optional auditgate.json at the project root,
// with one key namespace per pipeline variant. A missing or unparsable
// file silently falls back to hard-coded defaults: a gate validator that
// dies on its own config would halt the pipeline for a reason no agent
// can fix.
package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// FileName is the configuration file expected at the project root.
const FileName = "auditgate.json"

// Config holds all configuration for auditgate.
type Config struct {
	Audit  AuditConfig  `mapstructure:"audit"`
	Review ReviewConfig `mapstructure:"review"`
	Runner RunnerConfig `mapstructure:"runner"`
}

// AuditConfig configures the audit pipeline's gates.
type AuditConfig struct {
	// GateStrictness selects enforcement mode: "high" blocks on violation,
	// anything else only warns to stderr.
	GateStrictness string `mapstructure:"gate_strictness"`
	// EnableInvariants turns on scanning of the invariant test log.
	EnableInvariants bool `mapstructure:"enable_invariants"`
	// RequireSlither demands a static analysis report in the evidence gate.
	RequireSlither bool `mapstructure:"require_slither"`
	// MinFuzzRuns is the minimum fuzz_runs count the test-run log must
	// report. Zero disables the check; a log that reports no count at all
	// is not blocked.
	MinFuzzRuns int `mapstructure:"min_fuzz_runs"`
	// BlindEnforcement selects bundle blindness enforcement: "strict"
	// blocks, anything else logs violations and proceeds.
	BlindEnforcement string `mapstructure:"blind_enforcement"`
	// RequireRegressionTests demands a concrete regression test reference
	// on every blocking red-team issue.
	RequireRegressionTests bool `mapstructure:"require_regression_tests"`
}

// ReviewConfig configures the review pipeline's coverage validator.
type ReviewConfig struct {
	// GateStrictness selects enforcement mode, same vocabulary as the
	// audit namespace.
	GateStrictness string `mapstructure:"gate_strictness"`
	// RequireACCoverage demands that review artifacts cover every
	// acceptance criterion from the user stories.
	RequireACCoverage bool `mapstructure:"require_ac_coverage"`
}

// RunnerConfig configures the LLM CLI subprocess wrappers.
type RunnerConfig struct {
	// ClaudeBin is the claude CLI binary name or path.
	ClaudeBin string `mapstructure:"claude_bin"`
	// CodexBin is the codex CLI binary name or path.
	CodexBin string `mapstructure:"codex_bin"`
	// StageTimeout bounds one agent stage invocation.
	StageTimeout time.Duration `mapstructure:"stage_timeout"`
	// SessionTTL bounds how long a CLI session stays resumable.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// Strict reports whether the audit pipeline blocks on gate violations.
func (c AuditConfig) Strict() bool { return c.GateStrictness == "high" }

// BlindStrict reports whether bundle blindness violations block.
func (c AuditConfig) BlindStrict() bool { return c.BlindEnforcement == "strict" }

// Strict reports whether the review pipeline blocks on coverage violations.
func (c ReviewConfig) Strict() bool { return c.GateStrictness == "high" }

// Load reads auditgate.json from the given project root. A missing file or
// a parse failure returns defaults; stage sub-objects merge over defaults.
func Load(root string) *Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(root, FileName))
	v.SetConfigType("json")
	// Errors intentionally ignored: defaults apply.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return Default()
	}
	return cfg
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("audit.gate_strictness", "high")
	v.SetDefault("audit.enable_invariants", false)
	v.SetDefault("audit.require_slither", false)
	v.SetDefault("audit.min_fuzz_runs", 0)
	v.SetDefault("audit.blind_enforcement", "strict")
	v.SetDefault("audit.require_regression_tests", true)

	v.SetDefault("review.gate_strictness", "high")
	v.SetDefault("review.require_ac_coverage", true)

	v.SetDefault("runner.claude_bin", "claude")
	v.SetDefault("runner.codex_bin", "codex")
	v.SetDefault("runner.stage_timeout", "30m")
	v.SetDefault("runner.session_ttl", "2h")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Audit: AuditConfig{
			GateStrictness:         "high",
			BlindEnforcement:       "strict",
			RequireRegressionTests: true,
		},
		Review: ReviewConfig{
			GateStrictness:    "high",
			RequireACCoverage: true,
		},
		Runner: RunnerConfig{
			ClaudeBin:    "claude",
			CodexBin:     "codex",
			StageTimeout: 30 * time.Minute,
			SessionTTL:   2 * time.Hour,
		},
	}
}
