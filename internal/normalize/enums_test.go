package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"lowercase passthrough", "approved", "approved"},
		{"uppercase", "APPROVED", "approved"},
		{"spaces to underscores", "Needs Changes", "needs_changes"},
		{"run of whitespace", "needs   \t changes", "needs_changes"},
		{"surrounding whitespace", "  complete  ", "complete"},
		{"non-string int", 7, 7},
		{"non-string nil", nil, nil},
		{"non-string bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.in); got != tt.want {
				t.Errorf("Status(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatus_Idempotent(t *testing.T) {
	for _, s := range []string{"approved", "needs_changes", "needs_clarification", "rejected", "complete", "open", "closed", "pending"} {
		once := Status(s)
		twice := Status(once)
		if once != twice {
			t.Errorf("Status not idempotent on %q: %v then %v", s, once, twice)
		}
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"canonical", "high", "high"},
		{"uppercase", "HIGH", "high"},
		{"abbreviated", "Hi", "high"},
		{"crit", "crit", "critical"},
		{"unmatched lowercased", "Unknown", "unknown"},
		{"non-string", 3, 3},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Severity(tt.in); got != tt.want {
				t.Errorf("Severity(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSeverity_Idempotent(t *testing.T) {
	for _, s := range []string{"critical", "high", "medium", "low", "info", "unknown"} {
		once := Severity(s)
		twice := Severity(once)
		if once != twice {
			t.Errorf("Severity not idempotent on %q: %v then %v", s, once, twice)
		}
	}
}

func TestDocument(t *testing.T) {
	in := map[string]any{
		"status":   "Needs Changes",
		"severity": "Hi",
		"findings": []any{
			map[string]any{"id": "F-1", "severity": "CRIT"},
			map[string]any{"id": "F-2", "severity": "med"},
			"not an object",
		},
		"issues": []any{
			map[string]any{"id": "RT-1", "status": "OPEN"},
		},
		"untouched": []any{
			map[string]any{"severity": "HIGH"},
		},
	}

	want := map[string]any{
		"status":   "needs_changes",
		"severity": "high",
		"findings": []any{
			map[string]any{"id": "F-1", "severity": "critical"},
			map[string]any{"id": "F-2", "severity": "medium"},
			"not an object",
		},
		"issues": []any{
			map[string]any{"id": "RT-1", "status": "open"},
		},
		// Arrays outside the known field list are left alone.
		"untouched": []any{
			map[string]any{"severity": "HIGH"},
		},
	}

	got := Document(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Document mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_TopLevelArray(t *testing.T) {
	in := []any{
		map[string]any{"severity": "Hi"},
		map[string]any{"status": "CLOSED"},
	}
	want := []any{
		map[string]any{"severity": "high"},
		map[string]any{"status": "closed"},
	}
	got := Document(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Document mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_NonContainer(t *testing.T) {
	if got := Document("plain"); got != "plain" {
		t.Errorf("Document should pass scalars through, got %v", got)
	}
}
