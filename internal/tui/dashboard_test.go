package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sampleRows() []GateRow {
	return []GateRow{
		{Gate: "A", Agent: "blind-audit:spec-author", Status: "PASS"},
		{Gate: "B", Agent: "blind-audit:implementer", Status: "BLOCK", Detail: "missing test-run log"},
	}
}

func TestDashboardView(t *testing.T) {
	d := NewDashboard(sampleRows(), nil)
	view := d.View()

	for _, want := range []string{"Gate Status", "spec-author", "BLOCK", "missing test-run log", "1 passing", "1 blocked"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboardQuit(t *testing.T) {
	d := NewDashboard(sampleRows(), nil)
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("q produced %T, want tea.QuitMsg", msg)
	}
}

func TestDashboardRefresh(t *testing.T) {
	called := false
	d := NewDashboard(sampleRows(), func() []GateRow {
		called = true
		return []GateRow{{Gate: "A", Agent: "blind-audit:spec-author", Status: "BLOCK", Detail: "threat model gone"}}
	})

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("r should produce a refresh command")
	}
	model, _ := d.Update(cmd())
	if !called {
		t.Error("refresh function was not invoked")
	}
	if view := model.View(); !strings.Contains(view, "threat model gone") {
		t.Errorf("refreshed rows not rendered:\n%s", view)
	}
}
