// Package tui provides the terminal dashboard for gate status.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GateRow is one gate's snapshot in the dashboard.
type GateRow struct {
	// Gate is the gate id, e.g. "A" or "AC-PLAN".
	Gate string
	// Agent is the pipeline agent whose output the gate validates.
	Agent string
	// Status is PASS, BLOCK, or ERROR.
	Status string
	// Detail carries the block reason or error text, empty on pass.
	Detail string
}

// RefreshFunc re-evaluates every gate and returns fresh rows.
type RefreshFunc func() []GateRow

// refreshMsg carries re-evaluated rows back into the update loop.
type refreshMsg []GateRow

// Dashboard is the bubbletea model for the gate status table.
type Dashboard struct {
	tbl     table.Model
	rows    []GateRow
	refresh RefreshFunc
	width   int

	titleStyle  lipgloss.Style
	passStyle   lipgloss.Style
	blockStyle  lipgloss.Style
	footerStyle lipgloss.Style
}

// NewDashboard creates a dashboard seeded with the given rows. The
// refresh function is invoked when the user presses r.
func NewDashboard(rows []GateRow, refresh RefreshFunc) *Dashboard {
	cols := []table.Column{
		{Title: "Gate", Width: 8},
		{Title: "Agent", Width: 32},
		{Title: "Status", Width: 8},
		{Title: "Detail", Width: 60},
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(toTableRows(rows)),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("238"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	return &Dashboard{
		tbl:     tbl,
		rows:    rows,
		refresh: refresh,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			MarginBottom(1),
		passStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")),
		blockStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1),
	}
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return d, tea.Quit
		case "r":
			if d.refresh != nil {
				return d, func() tea.Msg { return refreshMsg(d.refresh()) }
			}
		}
	case tea.WindowSizeMsg:
		d.width = msg.Width
	case refreshMsg:
		d.rows = msg
		d.tbl.SetRows(toTableRows(msg))
	}

	var cmd tea.Cmd
	d.tbl, cmd = d.tbl.Update(msg)
	return d, cmd
}

// View implements tea.Model.
func (d *Dashboard) View() string {
	return d.titleStyle.Render("Gate Status") + "\n" +
		d.tbl.View() + "\n" +
		d.summary() + "\n" +
		d.footerStyle.Render("r refresh · q quit")
}

// summary renders the pass/block tally under the table.
func (d *Dashboard) summary() string {
	passing, blocked := 0, 0
	for _, r := range d.rows {
		if r.Status == "PASS" {
			passing++
		} else {
			blocked++
		}
	}
	out := d.passStyle.Render(fmt.Sprintf("%d passing", passing))
	if blocked > 0 {
		out += "  " + d.blockStyle.Render(fmt.Sprintf("%d blocked", blocked))
	}
	return out
}

// Run blocks until the user quits the dashboard.
func Run(rows []GateRow, refresh RefreshFunc) error {
	_, err := tea.NewProgram(NewDashboard(rows, refresh), tea.WithAltScreen()).Run()
	return err
}

func toTableRows(rows []GateRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{r.Gate, r.Agent, r.Status, r.Detail})
	}
	return out
}
