package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/authway/adminctl/internal/api"
)

// monitorClient is the slice of the API client the monitor needs.
type monitorClient interface {
	SystemStats(ctx context.Context) (*api.SystemStats, error)
	APIHealth(ctx context.Context) (*api.APIHealthReport, error)
}

// MonitorModel is the live system monitor. It polls system statistics and
// the per-endpoint health report on an interval and renders them as a table.
type MonitorModel struct {
	client   monitorClient
	interval time.Duration

	stats   *api.SystemStats
	health  *api.APIHealthReport
	fetched time.Time
	err     error

	endpoints table.Model
	quitting  bool
	styles    Styles
}

// monitorTickMsg triggers the next poll.
type monitorTickMsg time.Time

// monitorLoadedMsg carries one poll's results.
type monitorLoadedMsg struct {
	stats  *api.SystemStats
	health *api.APIHealthReport
	err    error
}

// NewMonitorModel creates the monitor view polling at the given interval.
func NewMonitorModel(client monitorClient, interval time.Duration) MonitorModel {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	columns := []table.Column{
		{Title: "Endpoint", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Latency", Width: 10},
		{Title: "Message", Width: 30},
	}
	endpoints := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Bold(true).
		Foreground(lipgloss.Color("63")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	tableStyles.Selected = tableStyles.Selected.
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("230"))
	endpoints.SetStyles(tableStyles)

	return MonitorModel{
		client:    client,
		interval:  interval,
		endpoints: endpoints,
		styles:    DefaultStyles(),
	}
}

// Init starts the first poll (required by Bubble Tea)
func (m MonitorModel) Init() tea.Cmd {
	return m.poll()
}

func (m MonitorModel) poll() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		stats, err := m.client.SystemStats(ctx)
		if err != nil {
			return monitorLoadedMsg{err: err}
		}
		health, err := m.client.APIHealth(ctx)
		if err != nil {
			return monitorLoadedMsg{stats: stats, err: err}
		}
		return monitorLoadedMsg{stats: stats, health: health}
	}
}

func (m MonitorModel) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.poll()
		}

	case monitorTickMsg:
		return m, m.poll()

	case monitorLoadedMsg:
		m.err = msg.err
		if msg.stats != nil {
			m.stats = msg.stats
		}
		if msg.health != nil {
			m.health = msg.health
			m.fetched = time.Now()
			m.endpoints.SetRows(endpointRows(msg.health))
		}
		return m, m.schedule()
	}

	var cmd tea.Cmd
	m.endpoints, cmd = m.endpoints.Update(msg)
	return m, cmd
}

func endpointRows(health *api.APIHealthReport) []table.Row {
	rows := make([]table.Row, 0, len(health.Endpoints))
	for _, e := range health.Endpoints {
		rows = append(rows, table.Row{
			e.Name,
			e.Status,
			fmt.Sprintf("%dms", e.ResponseTime),
			e.Message,
		})
	}
	return rows
}

// View renders the monitor (required by Bubble Tea)
func (m MonitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Authway System Monitor"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.stats == nil {
		b.WriteString("Waiting for first poll...\n")
		return b.String()
	}

	overall := "unknown"
	if m.health != nil {
		overall = m.health.OverallStatus
	}
	b.WriteString(fmt.Sprintf("Overall: %s  Users: %d (%d active)  Orgs: %d  Failed logins today: %d\n\n",
		m.styles.statusStyle(overall).Render(overall),
		m.stats.TotalUsers, m.stats.ActiveUsers,
		m.stats.TotalOrganizations,
		m.stats.FailedLoginsToday))

	b.WriteString(m.endpoints.View())
	b.WriteString("\n")

	status := "polling"
	if !m.fetched.IsZero() {
		status = fmt.Sprintf("updated %s, every %s", m.fetched.Format("15:04:05"), m.interval)
	}
	b.WriteString(m.styles.Help.Render(status + " · r refresh now · q quit"))
	return b.String()
}
