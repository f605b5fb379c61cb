package ui

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-sunmoon/internal/astro"
	"github.com/litescript/ls-sunmoon/internal/ephem"
	"github.com/litescript/ls-sunmoon/internal/state"
)

var solstice = time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

func newTestState(t *testing.T) *state.Manager {
	t.Helper()
	cfg := ephem.DefaultConfig()
	cfg.Observer = astro.Observer{Name: "London", LatDeg: 51.5, LonDeg: 0}
	calc, err := ephem.NewCalculator(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return state.NewManager(calc, state.DefaultConfig(), solstice)
}

func refreshedSnapshot(t *testing.T, mgr *state.Manager) state.Snapshot {
	t.Helper()
	if err := mgr.Refresh(context.Background(), solstice.Add(12*time.Hour)); err != nil {
		t.Fatal(err)
	}
	return mgr.Snapshot()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := New(newTestState(t))
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestModel_SwitchViews(t *testing.T) {
	m := New(newTestState(t))

	tests := []struct {
		key  string
		want ViewMode
	}{
		{"2", ViewWeek},
		{"1", ViewDay},
		{"w", ViewWeek},
		{"d", ViewDay},
		{"tab", ViewWeek},
		{"tab", ViewDay},
	}
	for _, tt := range tests {
		next, _ := m.Update(key(tt.key))
		m = next.(Model)
		if m.viewMode != tt.want {
			t.Errorf("after %q viewMode = %v, want %v", tt.key, m.viewMode, tt.want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := New(newTestState(t))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce tea.QuitMsg")
	}
}

func TestModel_DayNavigation(t *testing.T) {
	mgr := newTestState(t)
	m := New(mgr)

	next, cmd := m.Update(key("right"))
	m = next.(Model)
	if got := mgr.Cursor(); got.Day() != 22 {
		t.Errorf("cursor after right = %v, want June 22", got)
	}
	if !m.busy || cmd == nil {
		t.Fatal("navigation should start a refresh")
	}

	// Run the refresh command and feed its message back.
	msg := runBatch(t, cmd)
	next, _ = m.Update(msg)
	m = next.(Model)
	if m.busy {
		t.Error("busy should clear after the refresh message")
	}
	if d, ok := m.snapshot.Today(); !ok || d.Date.Day() != 22 {
		t.Errorf("snapshot day = %v", d.Date)
	}

	next, _ = m.Update(key("["))
	m = next.(Model)
	if got := mgr.Cursor(); got.Day() != 15 {
		t.Errorf("cursor after [ = %v, want June 15", got)
	}
}

// runBatch executes cmd and returns the first DataUpdateMsg or ErrorMsg.
func runBatch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			switch inner := c().(type) {
			case DataUpdateMsg, ErrorMsg:
				return inner
			}
		}
		t.Fatal("batch held no refresh message")
	}
	return msg
}

func TestModel_ErrorShownInFooter(t *testing.T) {
	m := New(newTestState(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	next, _ = m.Update(ErrorMsg{Error: errors.New("boom")})
	m = next.(Model)

	if !strings.Contains(m.View(), "ERROR: boom") {
		t.Error("error not rendered in footer")
	}
}

func TestModel_WeekEnterOpensDay(t *testing.T) {
	mgr := newTestState(t)
	m := New(mgr)
	m.setSnapshot(refreshedSnapshot(t, mgr))

	for _, k := range []string{"2", "down", "down", "enter"} {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	if m.viewMode != ViewDay {
		t.Errorf("viewMode = %v, want day after enter", m.viewMode)
	}
	if got := mgr.Cursor(); got.Day() != 23 {
		t.Errorf("cursor = %v, want June 23", got)
	}
}

func TestModel_ViewRendersAlmanac(t *testing.T) {
	mgr := newTestState(t)
	m := New(mgr)
	m.now = func() time.Time { return solstice.Add(12 * time.Hour) }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m = next.(Model)
	next, _ = m.Update(DataUpdateMsg{Snapshot: refreshedSnapshot(t, mgr)})
	m = next.(Model)

	out := stripANSI(m.View())
	for _, want := range []string{"Friday, 21 June 2024", "Sun", "Moon", "03:43 / 20:21", "Day length", "next: solar noon", "London"} {
		if !strings.Contains(out, want) {
			t.Errorf("day view missing %q", want)
		}
	}

	next, _ = m.Update(key("2"))
	m = next.(Model)
	out = stripANSI(m.View())
	if !strings.Contains(out, "7 days") || !strings.Contains(out, "Fri 2024-06-21") {
		t.Errorf("week view missing rows:\n%s", out)
	}
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestGradientColor(t *testing.T) {
	re := regexp.MustCompile(`^#[0-9A-F]{6}$`)
	for _, pos := range [][4]int{{0, 0, 10, 6}, {5, 3, 10, 6}, {9, 5, 10, 6}} {
		c := gradientColor(pos[0], pos[1], pos[2], pos[3])
		if !re.MatchString(c) {
			t.Errorf("gradientColor(%v) = %q, want #RRGGBB", pos, c)
		}
	}
}

func TestEventLabel(t *testing.T) {
	if eventLabel(state.EventSunrise) != "sunrise" || eventLabel(state.EventType("ECLIPSE")) != "eclipse" {
		t.Error("unexpected event labels")
	}
}

func TestModel_TodayUsesObserverZone(t *testing.T) {
	cfg := ephem.DefaultConfig()
	cfg.TZHours = 10
	calc, err := ephem.NewCalculator(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	mgr := state.NewManager(calc, state.DefaultConfig(), solstice.AddDate(0, 0, -30))

	m := New(mgr)
	// 20:00 UT is already the next morning ten hours east.
	m.now = func() time.Time { return solstice.Add(20 * time.Hour) }
	m.Update(key("t"))

	if got := mgr.Cursor(); got.Day() != 22 || got.Month() != time.June {
		t.Errorf("cursor = %v, want 2024-06-22", got)
	}
}
