// Package logging builds the process-wide zap logger. Everything goes to
// stderr: stdout is reserved for the hook decision channel, and a stray
// log line there would be parsed as a gate decision by the orchestrator.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger writing to stderr. Verbose lowers the
// level to debug.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewNop returns a logger that discards everything. Used by tests and by
// callers that have not been wired a real logger yet.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
