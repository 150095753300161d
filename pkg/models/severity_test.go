package models

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"critical", SeverityCritical},
		{"CRITICAL", SeverityCritical},
		{"crit", SeverityCritical},
		{"Crit.", SeverityCritical},
		{"high", SeverityHigh},
		{"HIGH", SeverityHigh},
		{"Hi", SeverityHigh},
		{"High severity", SeverityHigh},
		{"medium", SeverityMedium},
		{"Med", SeverityMedium},
		{"low", SeverityLow},
		{"Lo", SeverityLow},
		{"info", SeverityInfo},
		{"informational", SeverityInfo},
		{"  high  ", SeverityHigh},
		{"unknown", Severity("unknown")},
		{"WARNING", Severity("warning")},
		{"", Severity("")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSeverity(tt.in); got != tt.want {
				t.Errorf("ParseSeverity(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSeverity_Idempotent(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo} {
		if got := ParseSeverity(string(s)); got != s {
			t.Errorf("ParseSeverity(%q) = %q, want fixed point", s, got)
		}
	}
}

func TestSeverity_Rank(t *testing.T) {
	order := []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("Rank(%s) = %d not above Rank(%s) = %d",
				order[i], order[i].Rank(), order[i-1], order[i-1].Rank())
		}
	}
	if Severity("bogus").Rank() >= SeverityInfo.Rank() {
		t.Error("unknown severity should rank below info")
	}
}

func TestMaxSeverity(t *testing.T) {
	if got := MaxSeverity(SeverityLow, SeverityHigh); got != SeverityHigh {
		t.Errorf("MaxSeverity(low, high) = %s", got)
	}
	if got := MaxSeverity(SeverityHigh, SeverityLow); got != SeverityHigh {
		t.Errorf("MaxSeverity(high, low) = %s", got)
	}
	// Ties keep the first argument.
	if got := MaxSeverity(SeverityMedium, SeverityMedium); got != SeverityMedium {
		t.Errorf("MaxSeverity(medium, medium) = %s", got)
	}
}

func TestParseIssueSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want IssueSeverity
	}{
		{"HIGH", IssueSeverityHigh},
		{"high", IssueSeverityHigh},
		{"Hi", IssueSeverityHigh},
		{"CRITICAL", IssueSeverityHigh},
		{"MED", IssueSeverityMed},
		{"Medium", IssueSeverityMed},
		{"LOW", IssueSeverityLow},
		{"bogus", IssueSeverity("BOGUS")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseIssueSeverity(tt.in); got != tt.want {
				t.Errorf("ParseIssueSeverity(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIssueSeverity_Blocking(t *testing.T) {
	if !IssueSeverityHigh.Blocking() || !IssueSeverityMed.Blocking() {
		t.Error("HIGH and MED must be blocking")
	}
	if IssueSeverityLow.Blocking() {
		t.Error("LOW must not be blocking")
	}
}

func TestIssue_HasRegressionTest(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"test/Vault.t.sol::test_withdraw_reentrancy", true},
		{"pending", false},
		{"Pending", false},
		{"-", false},
		{"", false},
		{"  ", false},
		{"TBD", false},
		{"n/a", false},
	}
	for _, tt := range tests {
		issue := Issue{RegressionTest: tt.ref}
		if got := issue.HasRegressionTest(); got != tt.want {
			t.Errorf("HasRegressionTest(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
