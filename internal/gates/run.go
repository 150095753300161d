package gates

import "fmt"

// Gate ids accepted by Run. A-F are the audit pipeline's stage gates;
// the AC gates belong to the review pipeline.
const (
	GateSpecCompleteness = "A"
	GateEvidence         = "B"
	GateSpecCompliance   = "C"
	GateExploitHunt      = "D"
	GateRedTeamClosure   = "E"
	GateFinalApproval    = "F"
	GateACPlan           = "AC-PLAN"
	GateACCode           = "AC-CODE"
)

// Run dispatches a gate by id. Unknown ids are a plumbing error, not a
// content verdict.
func (v *Validator) Run(gateID string) (*Block, error) {
	switch gateID {
	case GateSpecCompleteness:
		return v.SpecCompleteness()
	case GateEvidence:
		return v.Evidence()
	case GateSpecCompliance:
		return v.SpecComplianceReview()
	case GateExploitHunt:
		return v.ExploitHuntReview()
	case GateRedTeamClosure:
		return v.RedTeamClosure()
	case GateFinalApproval:
		return v.FinalApproval()
	case GateACPlan:
		return v.ACCoverage(PlanReview)
	case GateACCode:
		return v.ACCoverage(CodeReview)
	}
	return nil, fmt.Errorf("unknown gate %q", gateID)
}

// Strict reports whether a block from the given gate should be enforced
// rather than only warned about, per the gate's pipeline namespace.
func (v *Validator) Strict(gateID string) bool {
	switch gateID {
	case GateACPlan, GateACCode:
		return v.Cfg.Review.Strict()
	default:
		return v.Cfg.Audit.Strict()
	}
}
