// Package tui is the live terminal dashboard: per-project totals refreshed
// from the log store while the tracker runs in another process.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"wintrack/internal/logstore"
	"wintrack/internal/report"
)

const refreshEvery = 30 * time.Second

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type refreshMsg struct {
	sums []logstore.ProjectSummary
	err  error
}

type model struct {
	store  *logstore.Store
	table  table.Model
	err    error
	width  int
	height int
}

// Run starts the dashboard on the current terminal.
func Run(store *logstore.Store) error {
	// Respect NO_COLOR without querying the terminal.
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(s)

	m := model{store: store, table: t}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func columns(width int) []table.Column {
	project := width - 58
	if project < 16 {
		project = 16
	}
	return []table.Column{
		{Title: "Project", Width: project},
		{Title: "Total", Width: 10},
		{Title: "Active", Width: 10},
		{Title: "Idle", Width: 8},
		{Title: "Focused", Width: 10},
		{Title: "Days", Width: 5},
		{Title: "Last", Width: 11},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.refresh, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m model) refresh() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.store.RebuildIndex(ctx); err != nil {
		return refreshMsg{err: err}
	}
	sums, err := m.store.Summaries(ctx)
	return refreshMsg{sums: sums, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width))
		if h := m.height - 6; h > 3 {
			m.table.SetHeight(h)
		}
	case refreshMsg:
		if msg.sums == nil && msg.err == nil {
			// Timer fired; kick off a reload and rearm.
			return m, tea.Batch(m.refresh, tick())
		}
		m.err = msg.err
		if msg.err == nil {
			m.table.SetRows(m.rows(msg.sums))
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) rows(sums []logstore.ProjectSummary) []table.Row {
	projectWidth := columns(m.width)[0].Width
	rows := make([]table.Row, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, table.Row{
			ansi.Truncate(s.Project, projectWidth, "…"),
			report.HumanDuration(s.DurationSec),
			report.HumanDuration(s.ActiveSec),
			report.HumanDuration(s.IdleSec),
			report.HumanDuration(s.FocusSec),
			fmt.Sprintf("%d", s.WorkDays),
			s.LastEnd.Format("Jan 2 15:04"),
		})
	}
	return rows
}

func (m model) View() string {
	header := titleStyle.Render("wintrack dashboard")
	body := m.table.View()
	if m.err != nil {
		body = errStyle.Render("load failed: "+m.err.Error()) + "\n\n" + body
	}
	footer := footerStyle.Render("q quit • r refresh • updates every 30s")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}
