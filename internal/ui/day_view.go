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

// Styles shared by the views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("94"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// DayModel shows one date in detail.
type DayModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewDayModel creates a new day view.
func NewDayModel() DayModel {
	return DayModel{}
}

// SetSize updates the viewport size.
func (m DayModel) SetSize(width, height int) DayModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DayModel) UpdateData(snapshot state.Snapshot) DayModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m DayModel) Update(msg tea.Msg) (DayModel, tea.Cmd) {
	return m, nil
}

// View renders the day.
func (m DayModel) View() string {
	d, ok := m.snapshot.Today()
	if !ok {
		return mutedStyle.Render("  No almanac yet")
	}

	var b strings.Builder
	zone, _ := d.Date.Zone()
	b.WriteString("  " + titleStyle.Render(d.Date.Format("Monday, 2 January 2006")))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s  JD %.1f", zone, d.JD)))
	b.WriteString("\n\n")

	b.WriteString(m.renderBody("☀ Sun", d.Sun, m.snapshot.SunTrack))
	b.WriteString("\n")
	b.WriteString(field("Day length", report.FormatDuration(d.DayLength())))
	if tw := d.Twilight; tw != nil {
		b.WriteString(field("Civil", report.FormatRiseSet(tw.Civil)))
		b.WriteString(field("Nautical", report.FormatRiseSet(tw.Nautical)))
		b.WriteString(field("Astronomical", report.FormatRiseSet(tw.Astronomical)))
	}
	b.WriteString("\n")

	b.WriteString(m.renderBody(report.PhaseIcon(d.Phase.Name)+" Moon", d.Moon, m.snapshot.MoonTrack))
	b.WriteString(field("Phase", formatPhase(d.Phase.Name, d.Phase.Fraction)))
	b.WriteString("\n")

	b.WriteString(m.renderNow(d))
	return b.String()
}

func (m DayModel) renderBody(title string, b ephem.BodyDay, track []ephem.Sample) string {
	var sb strings.Builder
	sb.WriteString("  " + titleStyle.Render(title) + "\n")
	sb.WriteString(field("Rise / Set", report.FormatRiseSet(b.RiseSet)))
	if b.Transit.OK {
		sb.WriteString(field("Transit", fmt.Sprintf("%s at %.1f°", report.FormatEvent(b.Transit.Hour, true), b.Transit.AltDeg)))
	}
	sb.WriteString(field("Noon RA/Dec", report.FormatRA(b.Noon.RA)+"  "+report.FormatDec(b.Noon.Dec)))
	if b.Noon.Distance > 0 {
		sb.WriteString(field("Distance", report.FormatDistance(b.Noon.Distance)))
	}
	sb.WriteString(field("Altitude", renderAltitudeSparkline(track, m.sparkWidth())))
	sb.WriteString(field("", mutedStyle.Render(hourAxis(m.sparkWidth()))))
	return sb.String()
}

func (m DayModel) renderNow(d ephem.Day) string {
	sky := m.snapshot.Sky
	if sky.Time.IsZero() {
		return ""
	}
	local := sky.Time.In(d.Date.Location())
	return field("Now "+local.Format("15:04"), fmt.Sprintf("Sun %+.1f° %s   Moon %+.1f° %s",
		sky.Sun.AltDeg, report.Compass(sky.Sun.AzDeg), sky.Moon.AltDeg, report.Compass(sky.Moon.AzDeg)))
}

func (m DayModel) sparkWidth() int {
	if m.width > 0 && m.width-20 < SparklineWidth {
		if w := m.width - 20; w > 8 {
			return w
		}
		return 8
	}
	return SparklineWidth
}

// hourAxis labels 0h, 12h and 24h under a sparkline of width cells.
func hourAxis(width int) string {
	if width < 9 {
		return strings.Repeat(" ", width)
	}
	axis := []rune(strings.Repeat(" ", width))
	put := func(at int, s string) {
		for i, r := range s {
			if at+i >= 0 && at+i < len(axis) {
				axis[at+i] = r
			}
		}
	}
	put(0, "0h")
	put(width/2-1, "12h")
	put(width-3, "24h")
	return string(axis)
}

func field(label, value string) string {
	return "    " + labelStyle.Render(fmt.Sprintf("%-13s", label)) + " " + valueStyle.Render(value) + "\n"
}
