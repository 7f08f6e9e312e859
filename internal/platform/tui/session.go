package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colonia/internal/chronicle"
	"github.com/vovakirdan/colonia/internal/core"
	"github.com/vovakirdan/colonia/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenColony
	screenHistory
)

// SessionModel manages the full session flow: menu -> colony -> menu, with
// the run history reachable from the menu. This is the top-level model used
// for SSH sessions.
type SessionModel struct {
	store        *storage.Store
	config       core.RuntimeConfig
	chronicleDir string
	logger       *log.Logger

	screen   screen
	founded  int
	menu     MenuModel
	colony   Model
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// WithLogger returns a copy that reports recording failures to l.
func (m SessionModel) WithLogger(l *log.Logger) SessionModel {
	m.logger = l
	return m
}

// WithChronicleDir returns a copy that archives each colony under dir.
func (m SessionModel) WithChronicleDir(dir string) SessionModel {
	m.chronicleDir = dir
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenColony:
		return m.updateColony(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		cfg := m.config
		cfg.Scenario = selected.ScenarioID
		if m.founded > 0 {
			// A configured seed applies to the first colony only.
			cfg.Seed = 0
		}

		session, err := core.NewSession(cfg)
		if err != nil {
			// Shouldn't happen since menu only shows registered scenarios
			m.warn("could not found colony", err)
			m.menu = NewMenuModel(m.config)
			return m, nil
		}

		var ch *chronicle.Chronicle
		if m.chronicleDir != "" {
			dir := filepath.Join(m.chronicleDir, fmt.Sprintf("%s-%d", cfg.Scenario, session.Config().Seed))
			ch = chronicle.Open(dir, session.City)
		}

		m.founded++
		m.colony = NewModel(session, m.store, ch)
		m.colony.embedded = true
		m.screen = screenColony
		return m, m.colony.Init()
	}

	return m, cmd
}

// updateColony handles updates while a colony runs.
func (m SessionModel) updateColony(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.colony.Update(msg)
	if colony, ok := newModel.(Model); ok {
		m.colony = colony
	}

	if m.colony.IsQuitting() || m.colony.BackToMenu() {
		if err := m.colony.SaveErr(); err != nil {
			m.warn("could not record run", err)
		}
	}

	if m.colony.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.colony.BackToMenu() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates while browsing the history.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) warn(msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(msg, "error", err)
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenColony:
		return m.colony.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}
