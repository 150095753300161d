package exec

import (
	"context"
	"os/exec"
	"strings"
)

// ExecRunner implements CommandRunner using os/exec. Commands are bound
// to the context; cancellation or deadline expiry kills the process.
type ExecRunner struct{}

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns combined stdout/stderr output.
func (r *ExecRunner) Run(ctx context.Context, workDir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	return cmd.CombinedOutput()
}

// RunInput executes a command with stdin content.
func (r *ExecRunner) RunInput(ctx context.Context, workDir string, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.CombinedOutput()
}

// Verify ExecRunner implements CommandRunner at compile time.
var _ CommandRunner = (*ExecRunner)(nil)
