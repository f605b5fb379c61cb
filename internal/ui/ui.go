// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunmoon/internal/report"
	"github.com/litescript/ls-sunmoon/internal/state"
	"github.com/litescript/ls-sunmoon/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewWeek
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a live sky update.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a recomputed almanac is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a computation error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager
	now   func() time.Time

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	busy     bool
	animTick int

	day  DayModel
	week WeekModel

	snapshot state.Snapshot
	lastErr  error
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:    stateMgr,
		now:      time.Now,
		viewMode: ViewDay,
		day:      NewDayModel(),
		week:     NewWeekModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshCmd(),
		tickCmd(m.state.RefreshInterval()),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDay
		case "2", "w":
			m.viewMode = ViewWeek
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2

		case "left", "h":
			m.state.Shift(-1)
			cmds = append(cmds, m.startRefresh())
		case "right", "l":
			m.state.Shift(1)
			cmds = append(cmds, m.startRefresh())
		case "pgup", "[":
			m.state.Shift(-7)
			cmds = append(cmds, m.startRefresh())
		case "pgdown", "]":
			m.state.Shift(7)
			cmds = append(cmds, m.startRefresh())
		case "t":
			m.state.SetCursor(m.observerNow())
			cmds = append(cmds, m.startRefresh())
		case "r":
			cmds = append(cmds, m.startRefresh())

		case "enter":
			if m.viewMode == ViewWeek {
				if d, ok := m.week.Selected(); ok {
					m.state.SetCursor(d.Date)
					m.viewMode = ViewDay
					m.week = m.week.ResetCursor()
					cmds = append(cmds, m.startRefresh())
				}
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo ~9 lines, tabs and footer ~3
		contentHeight := msg.Height - 12
		m.day = m.day.SetSize(msg.Width, contentHeight)
		m.week = m.week.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))
		if err := m.state.UpdateSky(time.Time(msg)); err != nil {
			m.lastErr = err
		}
		m.setSnapshot(m.state.Snapshot())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.busy = false
		m.lastErr = nil
		m.setSnapshot(msg.Snapshot)

	case ErrorMsg:
		m.busy = false
		m.lastErr = msg.Error

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) setSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.day = m.day.UpdateData(snap)
	m.week = m.week.UpdateData(snap)
}

// observerNow is the current time in the observer's zone.
func (m Model) observerNow() time.Time {
	cfg := m.state.Config()
	if cfg.Location != nil {
		return m.now().In(cfg.Location)
	}
	return m.now().In(time.FixedZone("", int(cfg.TZHours*3600)))
}

func (m *Model) startRefresh() tea.Cmd {
	m.busy = true
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	mgr, now := m.state, m.now
	return func() tea.Msg {
		if err := mgr.Refresh(context.Background(), now()); err != nil {
			return ErrorMsg{Error: err}
		}
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDay:
		m.day, cmd = m.day.Update(msg)
	case ViewWeek:
		m.week, cmd = m.week.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDay:
		content = m.day.View()
	case ViewWeek:
		content = m.week.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███████╗██╗   ██╗███╗   ██╗███╗   ███╗ ██████╗  ██████╗ ███╗   ██╗`,
		`  ██║     ██╔════╝      ██╔════╝██║   ██║████╗  ██║████╗ ████║██╔═══██╗██╔═══██╗████╗  ██║`,
		`  ██║     ███████╗█████╗███████╗██║   ██║██╔██╗ ██║██╔████╔██║██║   ██║██║   ██║██╔██╗ ██║`,
		`  ██║     ╚════██║╚════╝╚════██║██║   ██║██║╚██╗██║██║╚██╔╝██║██║   ██║██║   ██║██║╚██╗██║`,
		`  ███████╗███████║      ███████║╚██████╔╝██║ ╚████║██║ ╚═╝ ██║╚██████╔╝╚██████╔╝██║ ╚████║`,
		`  ╚══════╝╚══════╝      ╚══════╝ ╚═════╝ ╚═╝  ╚═══╝╚═╝     ╚═╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝`,
	}

	// A narrow terminal gets the plain name.
	if m.width > 0 && m.width < len([]rune(logo[0])) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(0, 0, 1, 1))).Bold(true)
		return "\n" + style.Render("  LS-SUNMOON") + "\n\n"
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Sun & Moon almanac · v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// deep blue through amber to pale gold, fading toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Night blue (#1E3A8A) -> Amber (#F59E0B) -> Pale gold (#FDE68A)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 30 + t*(245-30)
		g = 58 + t*(158-58)
		b = 138 + t*(11-138)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 245 + t*(253-245)
		g = 158 + t*(230-158)
		b = 11 + t*(138-11)
	}

	brightness := 1.0 - (yRatio * 0.4)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Day", "[2] Week"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}

	observer := m.snapshot.Config.Observer
	label := fmt.Sprintf("%s %.2f, %.2f", observer.Name, observer.LatDeg, observer.LonDeg)
	return "  " + strings.Join(parts, "  ") + "    " + dimStyle.Render(strings.TrimSpace(label))
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errStyle.Render("ERROR: " + m.lastErr.Error())
	case m.busy || m.snapshot.LastCompute.IsZero():
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing...")
	default:
		status = accentStyle.Render("●") + dimStyle.Render(fmt.Sprintf(" computed in %s", m.snapshot.ComputeDuration.Round(time.Millisecond)))
		if e, ok := m.snapshot.NextEvent(m.now()); ok {
			status += dimStyle.Render(fmt.Sprintf(" | next: %s %s",
				eventLabel(e.Type), e.Time.Format("15:04")))
		}
	}

	var help string
	switch m.viewMode {
	case ViewWeek:
		help = "↑↓: select | enter: open day | ←/→: shift | t: today | q: quit"
	default:
		help = "←/→: day | [/]: week | t: today | tab: switch view | q: quit"
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

// renderShimmerText renders text with a moving highlight.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 253, 230, 138
		case dist <= 3:
			r8, g8, b8 = 220, 180, 90
		case dist <= 5:
			r8, g8, b8 = 170, 130, 70
		default:
			r8, g8, b8 = 120, 100, 70
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func eventLabel(t state.EventType) string {
	switch t {
	case state.EventSunrise:
		return "sunrise"
	case state.EventSunset:
		return "sunset"
	case state.EventMoonrise:
		return "moonrise"
	case state.EventMoonset:
		return "moonset"
	case state.EventDawn:
		return "civil dawn"
	case state.EventDusk:
		return "civil dusk"
	case state.EventNoon:
		return "solar noon"
	default:
		return strings.ToLower(string(t))
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}

// formatPhase renders the phase with its glyph.
func formatPhase(name string, fraction float64) string {
	return fmt.Sprintf("%s %s (%.0f%% lit)", report.PhaseIcon(name), name, fraction*100)
}
