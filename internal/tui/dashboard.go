package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/authway/adminctl/internal/api"
)

// statsClient is the slice of the API client the dashboard needs.
type statsClient interface {
	DashboardStats(ctx context.Context) (*api.DashboardStats, error)
}

// DashboardModel renders the platform overview: totals, license
// distribution, and recent signups. Press r to refresh, q to quit.
type DashboardModel struct {
	client statsClient

	stats   *api.DashboardStats
	fetched time.Time
	err     error

	spinner  spinner.Model
	loading  bool
	quitting bool
	width    int
	styles   Styles
}

// statsLoadedMsg carries a fetched dashboard snapshot.
type statsLoadedMsg struct {
	stats *api.DashboardStats
	err   error
}

// NewDashboardModel creates the dashboard view.
func NewDashboardModel(client statsClient) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return DashboardModel{
		client:  client,
		spinner: s,
		loading: true,
		styles:  DefaultStyles(),
	}
}

// Init starts the spinner and the first fetch (required by Bubble Tea)
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m DashboardModel) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		stats, err := m.client.DashboardStats(ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, m.fetch())
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case statsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m.fetched = time.Now()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard (required by Bubble Tea)
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Authway Dashboard"))
	b.WriteString("\n")

	if m.loading && m.stats == nil {
		b.WriteString(m.spinner.View() + " Loading platform statistics...\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n")
		b.WriteString(m.styles.Help.Render("r refresh · q quit"))
		return b.String()
	}

	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderLicenses())
	b.WriteString("\n")
	b.WriteString(m.renderRecent())

	status := fmt.Sprintf("updated %s", m.fetched.Format("15:04:05"))
	if m.loading {
		status = m.spinner.View() + " refreshing"
	}
	b.WriteString(m.styles.Help.Render(status + " · r refresh · q quit"))
	return b.String()
}

func (m DashboardModel) renderCards() string {
	cards := []struct {
		label string
		value int
	}{
		{"Users", m.stats.TotalUsers},
		{"Organizations", m.stats.TotalOrganizations},
		{"Active licenses", m.stats.ActiveLicenses},
		{"Expiring soon", m.stats.ExpiringSoon},
		{"New this week", m.stats.NewUsersWeek},
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = m.styles.StatCard.Render(
			m.styles.StatValue.Render(fmt.Sprintf("%d", card.value)) + "\n" +
				m.styles.Muted.Render(card.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func (m DashboardModel) renderLicenses() string {
	if len(m.stats.LicenseDistribution) == 0 {
		return ""
	}

	types := make([]string, 0, len(m.stats.LicenseDistribution))
	for t := range m.stats.LicenseDistribution {
		types = append(types, t)
	}
	sort.Strings(types)

	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Licenses") + "\n")
	for _, t := range types {
		count := m.stats.LicenseDistribution[t]
		bar := strings.Repeat("█", min(count, 40))
		b.WriteString(fmt.Sprintf("  %-12s %s %d\n", t, m.styles.Key.Render(bar), count))
	}
	return b.String()
}

func (m DashboardModel) renderRecent() string {
	if len(m.stats.RecentUsers) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Recent signups") + "\n")
	for i, user := range m.stats.RecentUsers {
		if i >= 5 {
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			user.Email, m.styles.Muted.Render("("+user.Role+")")))
	}
	return b.String()
}
