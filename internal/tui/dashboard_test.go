package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/authway/adminctl/internal/api"
)

// stubStatsClient returns canned dashboard stats
type stubStatsClient struct {
	stats *api.DashboardStats
	err   error
	calls int
}

func (c *stubStatsClient) DashboardStats(ctx context.Context) (*api.DashboardStats, error) {
	c.calls++
	return c.stats, c.err
}

func testStats() *api.DashboardStats {
	return &api.DashboardStats{
		TotalUsers:          42,
		TotalOrganizations:  7,
		ActiveLicenses:      6,
		LicenseDistribution: map[string]int{"pro": 4, "enterprise": 2},
		RecentUsers: []api.RecentUser{
			{Email: "new@example.com", Role: "member"},
		},
	}
}

// TestDashboardLoading tests the initial loading state
func TestDashboardLoading(t *testing.T) {
	model := NewDashboardModel(&stubStatsClient{stats: testStats()})

	if !model.loading {
		t.Error("Expected model to start in loading state")
	}

	view := model.View()
	if !strings.Contains(view, "Loading") {
		t.Errorf("Expected loading view, got: %s", view)
	}
}

// TestDashboardStatsLoaded tests rendering after stats arrive
func TestDashboardStatsLoaded(t *testing.T) {
	model := NewDashboardModel(&stubStatsClient{stats: testStats()})

	updated, _ := model.Update(statsLoadedMsg{stats: testStats()})
	m := updated.(DashboardModel)

	if m.loading {
		t.Error("Expected loading to be false after stats arrive")
	}

	view := m.View()
	for _, want := range []string{"42", "new@example.com", "pro", "enterprise"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

// TestDashboardError tests rendering a fetch failure
func TestDashboardError(t *testing.T) {
	model := NewDashboardModel(&stubStatsClient{})

	updated, _ := model.Update(statsLoadedMsg{err: errors.New("backend unreachable")})
	m := updated.(DashboardModel)

	view := m.View()
	if !strings.Contains(view, "backend unreachable") {
		t.Errorf("Expected error in view, got: %s", view)
	}
}

// TestDashboardRefreshKey tests that r triggers a new fetch
func TestDashboardRefreshKey(t *testing.T) {
	model := NewDashboardModel(&stubStatsClient{stats: testStats()})
	updated, _ := model.Update(statsLoadedMsg{stats: testStats()})
	m := updated.(DashboardModel)

	refreshed, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = refreshed.(DashboardModel)

	if !m.loading {
		t.Error("Expected refresh to set loading")
	}
	if cmd == nil {
		t.Error("Expected refresh to return a command")
	}
}

// TestDashboardQuit tests quit keys
func TestDashboardQuit(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		model := NewDashboardModel(&stubStatsClient{})

		var msg tea.KeyMsg
		switch k {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}

		updated, cmd := model.Update(msg)
		m := updated.(DashboardModel)

		if !m.quitting {
			t.Errorf("Expected %s to quit", k)
		}
		if cmd == nil {
			t.Errorf("Expected %s to return tea.Quit", k)
		}
	}
}
