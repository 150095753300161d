// Package hook implements the subagent-completion hook protocol. The
// orchestrator spawns one process per agent completion, writes a JSON
// descriptor to stdin, and reads an optional block decision from stdout.
// The exit code is always zero; the decision travels only through stdout.
//
// This is the single fail-open boundary of the system: if the validator's
// own plumbing fails in any way, the hook stays silent and the pipeline
// proceeds. Content violations, found by a gate that ran to completion,
// are the only thing ever blocked on.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"go.uber.org/zap"

	"github.com/ShayCichocki/auditgate/internal/gates"
	"github.com/ShayCichocki/auditgate/internal/pipeline"
)

// Input is the descriptor the orchestrator writes to stdin.
type Input struct {
	// AgentID is the orchestrator's opaque identifier for the completed run.
	AgentID string `json:"agent_id"`
	// AgentTranscriptPath points at the completed agent's transcript log.
	AgentTranscriptPath string `json:"agent_transcript_path"`
}

// ReadInput decodes the stdin descriptor.
func ReadInput(r io.Reader) (*Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decoding hook input: %w", err)
	}
	return &in, nil
}

// subagentRe finds the pipeline agent identifier in a transcript: a
// subagent_type marker followed by a namespaced agent id.
var subagentRe = regexp.MustCompile(`subagent_type["'\s:=]+["']?(` + regexp.QuoteMeta(pipeline.AgentNamespace) + `[A-Za-z0-9_-]+)`)

// AgentFromTranscript extracts the originating pipeline agent from a
// transcript file. Returns "" when the file is unreadable or carries no
// recognizable marker; both are silent-pass conditions.
func AgentFromTranscript(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	m := subagentRe.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// Execute runs one hook invocation against the project root. It never
// returns an error and never panics across its boundary; the only output
// is an optional block decision on out.
func Execute(in io.Reader, out io.Writer, root string, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	ExecuteWith(gates.New(root, log), pipeline.Load(root), in, out, log)
}

// ExecuteWith is Execute with its collaborators injected.
func ExecuteWith(v *gates.Validator, reg *pipeline.Registry, in io.Reader, out io.Writer, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("validator panicked; failing open", zap.Any("panic", r))
		}
	}()

	input, err := ReadInput(in)
	if err != nil {
		log.Debug("unreadable hook input; failing open", zap.Error(err))
		return
	}
	if input.AgentTranscriptPath == "" {
		return
	}
	agent := AgentFromTranscript(input.AgentTranscriptPath)
	if agent == "" {
		return
	}
	stage, ok := reg.Lookup(agent)
	if !ok {
		log.Debug("agent not registered; passing through", zap.String("agent", agent))
		return
	}

	blk, err := v.Run(stage.Gate)
	if err != nil {
		log.Warn("gate could not run; failing open",
			zap.String("gate", stage.Gate), zap.Error(err))
		return
	}
	if blk == nil {
		return
	}
	if !v.Strict(stage.Gate) {
		log.Warn("gate violation in warn-only mode",
			zap.String("gate", stage.Gate), zap.String("reason", blk.Reason))
		return
	}
	if err := json.NewEncoder(out).Encode(blk); err != nil {
		log.Error("writing block decision", zap.Error(err))
	}
}
