package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colonia/internal/registry"
	"github.com/vovakirdan/colonia/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show scenario sidebar
	sidebarWidth       = 24  // Width of scenario sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScenario, k.PrevScenario, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScenario, k.PrevScenario},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next province"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev province"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	scenarios []registry.ScenarioInfo
	cursor    int
	store     *storage.Store
	runs      []storage.Run
	stats     *storage.ScenarioStats
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		scenarios: registry.List(),
		store:     store,
		keys:      DefaultHistoryKeyMap(),
		help:      h,
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	if len(m.scenarios) > 0 {
		m.loadRuns(m.scenarios[0].ID)
	}
	return m
}

// createTable creates the runs table.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Player", Width: 10},
		{Title: "Days", Width: 6},
		{Title: "Population", Width: 10},
		{Title: "Gold", Width: 8},
		{Title: "Outcome", Width: 11},
		{Title: "Played", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats, and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the runs and statistics of a scenario.
func (m *HistoryModel) loadRuns(scenario string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(scenario, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(scenario); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			player,
			fmt.Sprintf("%d", r.Days),
			fmt.Sprintf("%d", r.Population),
			fmt.Sprintf("%.1f", r.Gold),
			r.Outcome,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "ANNALS"
	if len(m.scenarios) > 0 {
		title = fmt.Sprintf("ANNALS - %s", m.scenarios[m.cursor].Title)
	}

	body := boxStyle.Render(m.renderTableContent())
	if m.width >= minWidthForSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	}

	return titleStyle.MarginBottom(1).Render(centerText(title, m.width)) + "\n\n" +
		body + "\n" +
		m.renderStats() + "\n" +
		dimStyle.Render(m.help.View(m.keys))
}

// renderSidebar lists the scenarios.
func (m HistoryModel) renderSidebar() string {
	out := "Provinces\n"
	for i, s := range m.scenarios {
		line := "  " + s.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + s.Title)
		}
		out += line + "\n"
	}
	return boxStyle.Width(sidebarWidth).Render(out)
}

// renderStats summarizes the scenario.
func (m HistoryModel) renderStats() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return dimStyle.Render(fmt.Sprintf("%d runs, best population %d, average %.0f, %d bankrupt, %d days governed",
		m.stats.Runs, m.stats.BestPop, m.stats.AvgPop, m.stats.Bankruptcies, m.stats.TotalDays))
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No colonies recorded yet.\nFound one to start the annals!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
