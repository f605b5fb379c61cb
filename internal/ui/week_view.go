package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunmoon/internal/ephem"
	"github.com/litescript/ls-sunmoon/internal/report"
	"github.com/litescript/ls-sunmoon/internal/state"
)

// daylightBarWidth is the width of the day length bar.
const daylightBarWidth = 12

// WeekModel lists consecutive days in a table.
type WeekModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewWeekModel creates a new week view.
func NewWeekModel() WeekModel {
	return WeekModel{}
}

// SetSize updates the viewport size.
func (m WeekModel) SetSize(width, height int) WeekModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m WeekModel) UpdateData(snapshot state.Snapshot) WeekModel {
	m.snapshot = snapshot
	if m.cursor >= len(snapshot.Days) {
		m.cursor = max(len(snapshot.Days)-1, 0)
	}
	return m
}

// ResetCursor moves the selection to the first row.
func (m WeekModel) ResetCursor() WeekModel {
	m.cursor = 0
	return m
}

// Selected returns the highlighted day.
func (m WeekModel) Selected() (ephem.Day, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Days) {
		return ephem.Day{}, false
	}
	return m.snapshot.Days[m.cursor], true
}

// Update handles messages.
func (m WeekModel) Update(msg tea.Msg) (WeekModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.snapshot.Days)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		}
	}
	return m, nil
}

// View renders the table.
func (m WeekModel) View() string {
	rows := report.GenerateSummaryRows(m.snapshot.Days)
	if len(rows) == 0 {
		return mutedStyle.Render("  No almanac yet")
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%d days", len(rows))) + "\n")

	header := fmt.Sprintf("%-15s %-6s %-6s %-8s %-14s %-8s %-8s %s",
		"Date", "Rise", "Set", "Length", "", "Moonrise", "Moonset", "Phase")
	b.WriteString("  " + headerStyle.Render(header) + "\n")

	for i, r := range rows {
		d := m.snapshot.Days[i]
		line := fmt.Sprintf("%-15s %-6s %-6s %-8s %s %-8s %-8s %s %3.0f%%",
			r.Date, r.Sunrise, r.Sunset, r.DayLength,
			renderDaylightBar(d.DayLength()/24, daylightBarWidth),
			r.Moonrise, r.Moonset, report.PhaseIcon(r.Phase), r.Lit*100)

		if i == m.cursor {
			b.WriteString("  " + selectedRowStyle.Render("▶ "+line) + "\n")
		} else {
			b.WriteString("  " + rowStyle.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

// renderDaylightBar draws the fraction of the day with the Sun up.
func renderDaylightBar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	return "[" + style.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled)) + "]"
}
