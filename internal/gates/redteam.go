package gates

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ShayCichocki/auditgate/internal/artifact"
	"github.com/ShayCichocki/auditgate/internal/normalize"
	"github.com/ShayCichocki/auditgate/pkg/models"
)

// severityClaimRe detects a HIGH/MED severity claim in a review document.
// It anchors on a "Severity" label so prose uses of "high" do not fire.
var severityClaimRe = regexp.MustCompile(`(?im)^.*severity\s*[:|]\s*\**\s*(crit(?:ical)?|high|med(?:ium)?)\b`)

// RedTeamClosure is gate E: every HIGH/MED issue the red team ever raised
// must have been driven to CLOSED with a verified regression test. The
// checks are strictly conjunctive per issue; LOW issues are exempt.
//
// When no issue log exists at all, the gate falls back to scanning every
// upstream detection artifact for a HIGH/MED claim: absence of the log is
// acceptable only if nobody upstream ever claimed a serious bug existed.
func (v *Validator) RedTeamClosure() (*Block, error) {
	const gate = "E"

	logPath := v.Layout.IssueLog()
	data, err := os.ReadFile(logPath)
	if err != nil {
		return v.closureFromUpstream(gate)
	}

	blocks := artifact.ParseIssueLog(string(data))
	var open []string
	for _, b := range blocks {
		if !b.Issue.Severity.Blocking() {
			continue
		}
		switch {
		case b.Malformed():
			open = append(open, fmt.Sprintf("%s: %s", b.Issue.ID, strings.Join(b.Problems, "; ")))
		case b.Issue.Status != models.IssueClosed:
			open = append(open, fmt.Sprintf("%s is %s, must be CLOSED", b.Issue.ID, b.Issue.Status))
		case v.Cfg.Audit.RequireRegressionTests && !b.Issue.HasRegressionTest():
			open = append(open, fmt.Sprintf("%s has no concrete regression test reference", b.Issue.ID))
		case !b.Issue.TestVerified:
			open = append(open, fmt.Sprintf("%s regression test is not marked verified", b.Issue.ID))
		}
	}
	if len(open) > 0 {
		return blockf(gate, "unresolved red-team issues: %s", strings.Join(open, "; ")), nil
	}
	return nil, nil
}

// closureFromUpstream handles the missing-issue-log path: if any upstream
// detection artifact claims a HIGH/MED finding, someone should have been
// tracking its closure, so the absent log is itself the violation.
func (v *Validator) closureFromUpstream(gate string) (*Block, error) {
	for _, path := range v.Layout.AdversarialReviews() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if severityClaimRe.Match(data) {
			return blockf(gate, "issue log %s is missing but %s claims a HIGH/MED finding", v.Layout.IssueLog(), path), nil
		}
	}
	for _, path := range v.Layout.ConsolidatedFindings() {
		doc := normalize.ReadArtifact(path)
		if doc == nil {
			continue
		}
		for _, f := range consolidatedFindings(doc) {
			if f.Severity.Rank() >= models.SeverityMedium.Rank() {
				return blockf(gate, "issue log %s is missing but %s reports %s finding %s", v.Layout.IssueLog(), path, f.Severity, f.ID), nil
			}
		}
	}
	return nil, nil
}

// consolidatedFindings extracts findings from a consolidated-findings
// document, which may be a bare array or an object with a findings or
// consolidated field.
func consolidatedFindings(doc any) []models.Finding {
	if arr, ok := doc.([]any); ok {
		findings := make([]models.Finding, 0, len(arr))
		for _, e := range arr {
			findings = append(findings, artifact.DecodeFinding(e))
		}
		return findings
	}
	if f := artifact.FindingsField(doc, "findings"); f != nil {
		return f
	}
	return artifact.FindingsField(doc, "consolidated")
}
