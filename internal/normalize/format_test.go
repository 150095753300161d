package normalize

import (
	"strings"
	"testing"

	"github.com/ShayCichocki/auditgate/pkg/models"
)

func TestIsThematicTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Access Control Issues", true},
		{"Multiple reentrancy vulnerabilities", true},
		{"Various concerns", true},
		{"Overall risk assessment", true},
		{"General code quality problems", true},
		{"Reentrancy in Vault.withdraw allows fund drain", false},
		{"Missing zero-address check in setOwner(", false},
		// "Issues" must match on word boundaries only.
		{"Tissue damage in contract", false},
		{"Unchecked return value of transfer() at Vault.sol", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := IsThematicTitle(tt.title); got != tt.want {
				t.Errorf("IsThematicTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestValidatePerVulnFormat(t *testing.T) {
	good := models.Finding{
		ID:       "VULN-001",
		File:     "Vault.sol",
		Line:     42,
		Severity: models.SeverityHigh,
		Title:    "Reentrancy in Vault.withdraw allows fund drain",
	}

	t.Run("well formed passes", func(t *testing.T) {
		if err := ValidatePerVulnFormat([]models.Finding{good}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty list passes", func(t *testing.T) {
		if err := ValidatePerVulnFormat(nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(f *models.Finding)
		wantSub string
	}{
		{"missing id", func(f *models.Finding) { f.ID = "" }, "id"},
		{"missing location", func(f *models.Finding) { f.File = ""; f.Affected = ""; f.Line = 0 }, "location"},
		{"missing severity", func(f *models.Finding) { f.Severity = "" }, "severity"},
		{"thematic title", func(f *models.Finding) { f.Title = "Access Control Issues" }, "thematic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := good
			tt.mutate(&f)
			err := ValidatePerVulnFormat([]models.Finding{f})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}

	t.Run("missing id reported before thematic title", func(t *testing.T) {
		f := good
		f.ID = ""
		f.Title = "Various concerns"
		err := ValidatePerVulnFormat([]models.Finding{f})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(strings.ToLower(err.Error()), "id") {
			t.Errorf("expected the id check to win, got %q", err)
		}
	})

	t.Run("affected alone satisfies location", func(t *testing.T) {
		f := good
		f.File = ""
		f.Line = 0
		f.Affected = "Vault.withdraw"
		if err := ValidatePerVulnFormat([]models.Finding{f}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
