// Package pipeline maps pipeline agents to the gates that validate their
// output. The built-in registry covers the standard blind-audit stages; a
// stages.yaml at the project root can override or extend it.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OverrideFile is the optional stage registry override at the project root.
const OverrideFile = "stages.yaml"

// AgentNamespace prefixes every pipeline agent identifier in transcripts.
const AgentNamespace = "blind-audit:"

// Stage binds one pipeline agent to its validation.
type Stage struct {
	// Agent is the namespaced agent identifier, e.g. "blind-audit:implementer".
	Agent string `yaml:"agent"`
	// Gate is the gate id run after the agent completes: A-F, AC-PLAN, AC-CODE.
	Gate string `yaml:"gate"`
	// Bundle optionally names the blindness policy of the bundle this
	// agent reviews: no-code, no-spec, no-attacker, no-defender.
	Bundle string `yaml:"bundle,omitempty"`
	// CLI names the tool that runs this agent, "claude" or "codex".
	// Empty means claude.
	CLI string `yaml:"cli,omitempty"`
}

// RunsOnCodex reports whether the stage's agent runs on the codex CLI.
func (s Stage) RunsOnCodex() bool { return s.CLI == "codex" }

// Registry holds the agent-to-gate mapping for one project.
type Registry struct {
	stages  []Stage
	byAgent map[string]Stage
}

// Default returns the built-in stage registry.
func Default() *Registry {
	return build([]Stage{
		{Agent: AgentNamespace + "spec-author", Gate: "A"},
		{Agent: AgentNamespace + "implementer", Gate: "B"},
		{Agent: AgentNamespace + "spec-reviewer", Gate: "C", Bundle: "no-code"},
		{Agent: AgentNamespace + "exploit-hunter", Gate: "D", Bundle: "no-spec", CLI: "codex"},
		{Agent: AgentNamespace + "attacker", Gate: "D", Bundle: "no-defender", CLI: "codex"},
		{Agent: AgentNamespace + "defender", Gate: "D", Bundle: "no-attacker"},
		{Agent: AgentNamespace + "red-team-verifier", Gate: "E"},
		{Agent: AgentNamespace + "final-reviewer", Gate: "F"},
		{Agent: AgentNamespace + "plan-reviewer", Gate: "AC-PLAN"},
		{Agent: AgentNamespace + "code-reviewer", Gate: "AC-CODE"},
	})
}

// Load returns the registry for a project root: the default mapping with
// any stages.yaml entries merged over it (matched by agent). A missing or
// unparsable override file leaves the defaults untouched.
func Load(root string) *Registry {
	reg := Default()
	data, err := os.ReadFile(filepath.Join(root, OverrideFile))
	if err != nil {
		return reg
	}
	var override struct {
		Stages []Stage `yaml:"stages"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return reg
	}

	merged := reg.stages
	for _, s := range override.Stages {
		if s.Agent == "" || s.Gate == "" {
			continue
		}
		replaced := false
		for i, existing := range merged {
			if existing.Agent == s.Agent {
				merged[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, s)
		}
	}
	return build(merged)
}

func build(stages []Stage) *Registry {
	byAgent := make(map[string]Stage, len(stages))
	for _, s := range stages {
		byAgent[s.Agent] = s
	}
	return &Registry{stages: stages, byAgent: byAgent}
}

// Lookup returns the stage for a namespaced agent identifier.
func (r *Registry) Lookup(agent string) (Stage, bool) {
	s, ok := r.byAgent[agent]
	return s, ok
}

// Stages returns every registered stage in order.
func (r *Registry) Stages() []Stage {
	return r.stages
}

// Validate checks the registry for internal consistency.
func (r *Registry) Validate() error {
	for _, s := range r.stages {
		if s.Agent == "" {
			return fmt.Errorf("stage with gate %s has no agent", s.Gate)
		}
		if s.Gate == "" {
			return fmt.Errorf("agent %s has no gate", s.Agent)
		}
	}
	return nil
}
