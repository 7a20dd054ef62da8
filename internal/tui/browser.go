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

// databaseClient is the slice of the API client the browser needs.
type databaseClient interface {
	Tables(ctx context.Context) ([]api.TableInfo, error)
	TableData(ctx context.Context, table string, limit, offset int) (*api.TableData, error)
}

// browserMode is which level of the browser is showing.
type browserMode int

const (
	modeTableList browserMode = iota
	modeTableData
)

const browserPageSize = 25

// BrowserModel is the read-only database browser. The top level lists
// tables; enter drills into a table's rows with n/p paging.
type BrowserModel struct {
	client databaseClient

	mode    browserMode
	tables  []api.TableInfo
	current string
	data    *api.TableData
	offset  int
	err     error
	loading bool

	list     table.Model
	rows     table.Model
	quitting bool
	styles   Styles
}

// tablesLoadedMsg carries the table list.
type tablesLoadedMsg struct {
	tables []api.TableInfo
	err    error
}

// tableDataLoadedMsg carries one page of a table.
type tableDataLoadedMsg struct {
	table string
	data  *api.TableData
	err   error
}

// NewBrowserModel creates the database browser view.
func NewBrowserModel(client databaseClient) BrowserModel {
	list := table.New(
		table.WithColumns([]table.Column{
			{Title: "Table", Width: 30},
			{Title: "Columns", Width: 10},
			{Title: "Rows", Width: 12},
		}),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(lipgloss.Color("63")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("230"))
	list.SetStyles(styles)

	return BrowserModel{
		client:  client,
		mode:    modeTableList,
		list:    list,
		loading: true,
		styles:  DefaultStyles(),
	}
}

// Init starts loading the table list (required by Bubble Tea)
func (m BrowserModel) Init() tea.Cmd {
	return m.fetchTables()
}

func (m BrowserModel) fetchTables() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		tables, err := m.client.Tables(ctx)
		return tablesLoadedMsg{tables: tables, err: err}
	}
}

func (m BrowserModel) fetchData(name string, offset int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		data, err := m.client.TableData(ctx, name, browserPageSize, offset)
		return tableDataLoadedMsg{table: name, data: data, err: err}
	}
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tablesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.tables = msg.tables
			rows := make([]table.Row, len(msg.tables))
			for i, t := range msg.tables {
				rows[i] = table.Row{t.Name, fmt.Sprintf("%d", t.Columns), fmt.Sprintf("%d", t.Rows)}
			}
			m.list.SetRows(rows)
		}
		return m, nil

	case tableDataLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.mode = modeTableData
			m.current = msg.table
			m.data = msg.data
			m.offset = msg.data.Offset
			m.rows = dataTable(msg.data)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == modeTableList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.rows, cmd = m.rows.Update(msg)
	}
	return m, cmd
}

func (m BrowserModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.mode == modeTableData {
			m.mode = modeTableList
			m.data = nil
			m.err = nil
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.mode == modeTableList && len(m.list.SelectedRow()) > 0 {
			m.loading = true
			return m, m.fetchData(m.list.SelectedRow()[0], 0)
		}

	case "n":
		if m.mode == modeTableData && m.data != nil && m.offset+browserPageSize < m.data.TotalCount {
			m.loading = true
			return m, m.fetchData(m.current, m.offset+browserPageSize)
		}

	case "p":
		if m.mode == modeTableData && m.offset > 0 {
			m.loading = true
			return m, m.fetchData(m.current, max(m.offset-browserPageSize, 0))
		}

	case "r":
		m.loading = true
		if m.mode == modeTableData {
			return m, m.fetchData(m.current, m.offset)
		}
		return m, m.fetchTables()
	}

	var cmd tea.Cmd
	if m.mode == modeTableList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.rows, cmd = m.rows.Update(msg)
	}
	return m, cmd
}

// dataTable builds a bubbles table for one page of rows.
func dataTable(data *api.TableData) table.Model {
	columns := make([]table.Column, len(data.Columns))
	for i, name := range data.Columns {
		columns[i] = table.Column{Title: name, Width: columnWidth(name)}
	}
	rows := make([]table.Row, len(data.Rows))
	for i, row := range data.Rows {
		cells := make(table.Row, len(row))
		for j, cell := range row {
			cells[j] = formatCell(cell)
		}
		rows[i] = cells
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(min(len(rows)+1, 20)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(lipgloss.Color("63")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("230"))
	t.SetStyles(styles)
	return t
}

func columnWidth(name string) int {
	if len(name) < 12 {
		return 14
	}
	return len(name) + 2
}

// formatCell renders one database value for display. Values arrive as
// decoded JSON, so numbers are float64.
func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case string:
		if len(value) > 40 {
			return value[:37] + "..."
		}
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	case bool:
		return fmt.Sprintf("%t", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// View renders the browser (required by Bubble Tea)
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Authway Database Browser"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n")
	}

	switch m.mode {
	case modeTableList:
		if m.loading && len(m.tables) == 0 {
			b.WriteString("Loading tables...\n")
			return b.String()
		}
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter open · r refresh · q quit"))

	case modeTableData:
		page := m.offset/browserPageSize + 1
		pages := 1
		if m.data != nil && m.data.TotalCount > 0 {
			pages = (m.data.TotalCount + browserPageSize - 1) / browserPageSize
		}
		b.WriteString(m.styles.Subtitle.Render(
			fmt.Sprintf("%s · page %d/%d", m.current, page, pages)))
		b.WriteString("\n")
		b.WriteString(m.rows.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("n next page · p previous · esc back · q quit"))
	}

	return b.String()
}
