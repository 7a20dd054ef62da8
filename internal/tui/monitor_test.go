package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/authway/adminctl/internal/api"
)

// stubMonitorClient returns canned system stats and health
type stubMonitorClient struct {
	stats  *api.SystemStats
	health *api.APIHealthReport
	err    error
}

func (c *stubMonitorClient) SystemStats(ctx context.Context) (*api.SystemStats, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.stats, nil
}

func (c *stubMonitorClient) APIHealth(ctx context.Context) (*api.APIHealthReport, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.health, nil
}

func testMonitor() MonitorModel {
	client := &stubMonitorClient{
		stats: &api.SystemStats{
			TotalUsers:        42,
			ActiveUsers:       30,
			FailedLoginsToday: 3,
		},
		health: &api.APIHealthReport{
			OverallStatus: "healthy",
			Endpoints: []api.EndpointHealth{
				{Name: "Authentication API", Status: "healthy", ResponseTime: 12},
				{Name: "Database API", Status: "slow", ResponseTime: 420},
			},
		},
	}
	return NewMonitorModel(client, time.Minute)
}

// TestMonitorDefaults tests interval defaulting
func TestMonitorDefaults(t *testing.T) {
	model := NewMonitorModel(&stubMonitorClient{}, 0)
	if model.interval != 10*time.Second {
		t.Errorf("interval = %v, want 10s default", model.interval)
	}
}

// TestMonitorPollCycle tests a full poll and render
func TestMonitorPollCycle(t *testing.T) {
	model := testMonitor()

	cmd := model.Init()
	if cmd == nil {
		t.Fatal("Init should start a poll")
	}
	msg := cmd()
	loaded, ok := msg.(monitorLoadedMsg)
	if !ok {
		t.Fatalf("Expected monitorLoadedMsg, got %T", msg)
	}

	updated, next := model.Update(loaded)
	m := updated.(MonitorModel)
	if next == nil {
		t.Error("Expected the next tick to be scheduled")
	}

	view := m.View()
	for _, want := range []string{"healthy", "Authentication API", "420ms", "42"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
}

// TestMonitorPollError tests that errors render but do not stop polling
func TestMonitorPollError(t *testing.T) {
	model := testMonitor()

	updated, next := model.Update(monitorLoadedMsg{err: errors.New("connection refused")})
	m := updated.(MonitorModel)

	if next == nil {
		t.Error("Expected polling to continue after an error")
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Error("Expected error in view")
	}
}

// TestMonitorTickTriggersPoll tests the tick message
func TestMonitorTickTriggersPoll(t *testing.T) {
	model := testMonitor()

	_, cmd := model.Update(monitorTickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("Expected tick to trigger a poll")
	}
	if _, ok := cmd().(monitorLoadedMsg); !ok {
		t.Error("Expected poll result message")
	}
}

// TestMonitorQuit tests quit keys
func TestMonitorQuit(t *testing.T) {
	model := testMonitor()

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m := updated.(MonitorModel)

	if !m.quitting || cmd == nil {
		t.Error("Expected q to quit")
	}
	if m.View() != "" {
		t.Error("Expected empty view while quitting")
	}
}
