// Package gates implements the per-stage gate validators of the audit
// pipeline. Each gate defines the exact files, fields, and cross-field
// rules that must hold before its stage counts as satisfied.
//
// Outcomes are two distinct types. A *Block is a content verdict: the
// artifact is missing, malformed, or violates a rule, and the producing
// agent should see the reason and self-correct. An ordinary error means
// the validator's own plumbing failed; it is never surfaced as a block,
// and the hook boundary coerces it to a pass. Keeping the two apart means
// a validator crash can never be mistaken for a content violation.
package gates

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/config"
)

// Block is a gate's content verdict: the stage is not satisfied, with a
// reason string written to be consumed by the LLM agent that will repair
// the artifact. A nil *Block means the gate passed.
type Block struct {
	// Gate identifies which gate failed, e.g. "A".
	Gate string `json:"-"`
	// Decision is always "block" on the wire.
	Decision string `json:"decision"`
	// Reason names the gate, the specific violation, and where possible
	// what would satisfy the check.
	Reason string `json:"reason"`
}

// blockf builds a Block whose reason opens with the gate identifier.
func blockf(gate, format string, args ...any) *Block {
	return &Block{
		Gate:     gate,
		Decision: "block",
		Reason:   fmt.Sprintf("GATE %s FAILED: %s", gate, fmt.Sprintf(format, args...)),
	}
}

// Validator evaluates gates against one project's artifact tree.
type Validator struct {
	// Layout locates the project's artifacts.
	Layout artifact.Layout
	// Cfg is the loaded pipeline configuration.
	Cfg *config.Config
	// Resolver disambiguates which candidate artifact an agent just wrote.
	Resolver artifact.Resolver
	// Log receives diagnostics. Never writes to stdout.
	Log *zap.Logger
}

// New creates a Validator over the given project root with the config
// loaded from it.
func New(root string, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{
		Layout:   artifact.NewLayout(root),
		Cfg:      config.Load(root),
		Resolver: artifact.MTimeResolver{},
		Log:      log,
	}
}
