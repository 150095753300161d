// Package runner wraps the two LLM CLIs the pipeline drives. Every
// invocation runs under a hard wall-clock timeout with forced process
// kill; a timed-out or failed launch never registers an active session,
// so a later invocation cannot resume into a dead one.
package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/ShayCichocki/auditgate/internal/config"
	"github.com/ShayCichocki/auditgate/internal/exec"
	"github.com/ShayCichocki/auditgate/internal/session"
)

// ErrStageTimeout is returned when a CLI invocation exceeds the stage
// timeout and is killed.
var ErrStageTimeout = errors.New("stage timed out")

// codexSessionRe extracts the session identifier the codex CLI prints.
var codexSessionRe = regexp.MustCompile(`session[_ ]id["':\s]+([A-Za-z0-9-]+)`)

// Runner invokes the configured LLM CLIs.
type Runner struct {
	// Exec performs the actual subprocess work.
	Exec exec.CommandRunner
	// Sessions tracks codex session resumability.
	Sessions *session.Store
	// Cfg carries binary names and timeouts.
	Cfg config.RunnerConfig
	// Log receives diagnostics.
	Log *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Runner.
func New(cr exec.CommandRunner, sessions *session.Store, cfg config.RunnerConfig, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Exec: cr, Sessions: sessions, Cfg: cfg, Log: log, now: time.Now}
}

// RunClaude runs one prompt through the claude CLI in print mode and
// returns its output.
func (r *Runner) RunClaude(ctx context.Context, workDir, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Cfg.StageTimeout)
	defer cancel()

	out, err := r.Exec.RunInput(ctx, workDir, prompt, r.Cfg.ClaudeBin, "-p", "--output-format", "text")
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%s: %w", r.Cfg.ClaudeBin, ErrStageTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("running %s: %w", r.Cfg.ClaudeBin, err)
	}
	return string(out), nil
}

// RunCodex runs one prompt through the codex CLI, resuming the stored
// session when one is still active. A successful run that prints a
// session id registers it for later resumption; timeouts and failures
// register nothing.
func (r *Runner) RunCodex(ctx context.Context, workDir, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Cfg.StageTimeout)
	defer cancel()

	args := []string{"exec"}
	if r.Sessions != nil {
		rec, ok, err := r.Sessions.Resumable("codex", r.now(), r.Cfg.SessionTTL)
		if err != nil {
			r.Log.Warn("session lookup failed; starting fresh", zap.Error(err))
		} else if ok {
			args = append(args, "resume", rec.SessionID)
		}
	}

	out, err := r.Exec.RunInput(ctx, workDir, prompt, r.Cfg.CodexBin, args...)
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%s: %w", r.Cfg.CodexBin, ErrStageTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("running %s: %w", r.Cfg.CodexBin, err)
	}

	if r.Sessions != nil {
		if m := codexSessionRe.FindSubmatch(out); m != nil {
			if err := r.Sessions.Begin("codex", string(m[1]), r.now()); err != nil {
				r.Log.Warn("could not register codex session", zap.Error(err))
			}
		}
	}
	return string(out), nil
}
