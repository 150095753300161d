package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ShayCichocki/auditgate/internal/pipeline"
)

func TestAffectedGates(t *testing.T) {
	reg := pipeline.Default()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"threat model", filepath.Join("docs", "security", "threat-model.md"), []string{"A"}},
		{"design doc", filepath.Join("docs", "architecture", "design.md"), []string{"A"}},
		{"spec complete artifact", filepath.Join(".task", "spec-complete.json"), []string{"A"}},
		{"test run log", filepath.Join("reports", "test-run.log"), []string{"B"}},
		{"test run log under absolute root", filepath.Join(string(filepath.Separator), "audit", "reports", "test-run.log"), []string{"B"}},
		{"gas snapshot", filepath.Join("reports", "gas-snapshot.txt"), []string{"B"}},
		{"stage3 review", filepath.Join("docs", "reviews", "stage3-review.md"), []string{"C"}},
		{"stage3 companion", filepath.Join(".task", "stage3-review-codex.json"), []string{"C"}},
		{"stage4 review", filepath.Join("docs", "reviews", "stage4-review.md"), []string{"D"}},
		{"dispute resolution", filepath.Join("docs", "reviews", "dispute-resolution-review.md"), []string{"D"}},
		{"issue log", filepath.Join("docs", "security", "issue-log.md"), []string{"E"}},
		{"consolidated findings", filepath.Join(".task", "consolidated-findings.json"), []string{"E"}},
		{"final review", filepath.Join("docs", "reviews", "final-review.md"), []string{"F"}},
		{"plan review", filepath.Join(".task", "plan-review.json"), []string{"AC-PLAN"}},
		{"user stories feed both AC gates", filepath.Join(".task", "user-stories.json"), []string{"AC-PLAN", "AC-CODE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := affectedGates(tt.path, reg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("affectedGates(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAffectedGates_UnknownFileRerunsEverything(t *testing.T) {
	reg := pipeline.Default()
	got := affectedGates(filepath.Join("docs", "notes.md"), reg)
	if !reflect.DeepEqual(got, gateOrder(reg)) {
		t.Errorf("unknown file should re-run every gate, got %v", got)
	}
}

func TestGateOrder(t *testing.T) {
	got := gateOrder(pipeline.Default())
	want := []string{"A", "B", "C", "D", "E", "F", "AC-PLAN", "AC-CODE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("gateOrder = %v, want %v", got, want)
	}
}
