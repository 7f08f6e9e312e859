package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colonia/internal/chronicle"
	"github.com/vovakirdan/colonia/internal/core"
	"github.com/vovakirdan/colonia/internal/sim"
	"github.com/vovakirdan/colonia/internal/storage"
)

// Panel is the view shown below the status header.
type Panel int

const (
	PanelDashboard Panel = iota
	PanelConstructions
	PanelLaws
	PanelEvents
	PanelHelp
)

// Model is the Bubble Tea model for running one colony.
type Model struct {
	session   *core.Session
	store     *storage.Store
	chronicle *chronicle.Chronicle
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model

	panel    Panel
	projects table.Model
	variant  int
	law      int
	site     int
	choice   int
	events   []string
	status   string

	over       bool
	embedded   bool // Esc on the dashboard returns to the menu
	quitting   bool
	backToMenu bool
	saved      bool
	runID      int64
	saveErr    error
}

// NewModel creates a new Bubble Tea model for the session.
// store and ch may be nil.
func NewModel(session *core.Session, store *storage.Store, ch *chronicle.Chronicle) Model {
	cfg := session.Config()
	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		session:   session,
		store:     store,
		chronicle: ch,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
	m.projects = m.createProjectTable()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	if in.Action == core.ActionQuit {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if m.over {
		if in.Action == core.ActionBack && m.embedded {
			m.finish()
			m.backToMenu = true
		}
		return m, nil
	}

	if m.session.Popup() != nil {
		m.handlePopupKey(in)
		return m, nil
	}

	switch in.Action {
	case core.ActionSetSpeed, core.ActionTogglePause:
		m.apply(in)
		return m, nil
	case core.ActionConstructions:
		m.panel = PanelConstructions
		return m, nil
	case core.ActionLaws:
		m.panel = PanelLaws
		return m, nil
	case core.ActionEvents:
		m.panel = PanelEvents
		m.readEvents()
		return m, nil
	case core.ActionHelp:
		m.panel = PanelHelp
		return m, nil
	case core.ActionBack:
		if m.panel != PanelDashboard {
			m.panel = PanelDashboard
			return m, nil
		}
		if m.embedded {
			m.finish()
			m.backToMenu = true
		}
		return m, nil
	}

	switch m.panel {
	case PanelDashboard:
		m.handleDashboardKey(in)
	case PanelConstructions, PanelHelp:
		return m.handleProjectKey(in)
	case PanelLaws:
		m.handleLawKey(in)
	}
	return m, nil
}

// handleDashboardKey moves the site cursor and acts on the selected site.
func (m *Model) handleDashboardKey(in core.Input) {
	sites := len(m.session.City.Constructions())
	switch in.Action {
	case core.ActionUp:
		if m.site > 0 {
			m.site--
		}
	case core.ActionDown:
		if m.site < sites-1 {
			m.site++
		}
	case core.ActionPauseConstruction, core.ActionToggleMaintenance, core.ActionCancelConstruction:
		in.Value = m.site
		m.apply(in)
	}
}

// handleProjectKey drives the project table and builds on confirm.
func (m Model) handleProjectKey(in core.Input) (tea.Model, tea.Cmd) {
	switch in.Action {
	case core.ActionUp:
		m.projects.MoveUp(1)
		m.variant = 0
	case core.ActionDown:
		m.projects.MoveDown(1)
		m.variant = 0
	case core.ActionLeft:
		if m.variant > 0 {
			m.variant--
		}
	case core.ActionRight:
		if p := m.selectedProject(); p != nil && m.variant < len(p.Variants)-1 {
			m.variant++
		}
	case core.ActionConfirm:
		if m.panel == PanelConstructions {
			m.apply(core.Input{Action: core.ActionBuild, Value: m.projects.Cursor(), Variant: m.variant})
			if m.status == "" {
				m.panel = PanelDashboard
			}
		}
	}
	return m, nil
}

// handleLawKey moves the law cursor and enacts on confirm.
func (m *Model) handleLawKey(in core.Input) {
	laws := len(m.session.City.Laws())
	switch in.Action {
	case core.ActionUp:
		if m.law > 0 {
			m.law--
		}
	case core.ActionDown:
		if m.law < laws-1 {
			m.law++
		}
	case core.ActionConfirm:
		m.apply(core.With(core.ActionEnact, m.law))
	}
}

// handlePopupKey answers the open popup. Digits pick a choice directly.
func (m *Model) handlePopupKey(in core.Input) {
	p := m.session.Popup()
	switch in.Action {
	case core.ActionUp:
		if m.choice > 0 {
			m.choice--
		}
	case core.ActionDown:
		if m.choice < len(p.Choices)-1 {
			m.choice++
		}
	case core.ActionSetSpeed:
		if in.Value >= 1 && in.Value <= len(p.Choices) {
			m.choice = in.Value - 1
			m.apply(core.With(core.ActionChoose, m.choice))
			m.choice = 0
		}
	case core.ActionConfirm:
		m.apply(core.With(core.ActionChoose, m.choice))
		m.choice = 0
	case core.ActionTogglePause:
		m.apply(in)
	}
}

// apply performs a colony action and keeps the error for the status line.
func (m *Model) apply(in core.Input) {
	m.status = ""
	if err := m.session.Apply(in); err != nil {
		m.status = describe(err)
	}
}

// describe turns a colony error into a status line.
func describe(err error) string {
	switch {
	case errors.Is(err, sim.ErrLawsDisabled):
		return "Laws need a sitting senate."
	case errors.Is(err, sim.ErrLawEnacted):
		return "The Senate already passed that law."
	case errors.Is(err, sim.ErrNotUnderConstruction):
		return "That building is not under construction."
	case errors.Is(err, sim.ErrNotFinished):
		return "Only finished buildings have upkeep."
	case errors.Is(err, core.ErrNoSuchConstruction):
		return "No construction selected."
	default:
		return err.Error()
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.projects = m.createProjectTable()
	return m, nil
}

// handleFrame advances the colony when a day is due.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.over {
		return m, frameCmd(m.config.FPS)
	}

	if m.session.Frame(now) {
		if m.chronicle != nil {
			m.chronicle.Day()
		}
		if m.panel == PanelEvents {
			m.readEvents()
		}
		if sites := len(m.session.City.Constructions()); m.site >= sites {
			m.site = max(0, sites-1)
		}
		if m.session.City.Current().Outcome() != sim.Republic {
			m.over = true
			m.session.City.SetSpeed(0)
		}
	}

	return m, frameCmd(m.config.FPS)
}

// readEvents reads one full pass of the event log.
func (m *Model) readEvents() {
	log := m.session.City.Log()
	log.Rewind()
	m.events = m.events[:0]
	for {
		line, ok := log.NextUnread()
		if !ok {
			break
		}
		m.events = append(m.events, line)
	}
}

// finish records the run once.
func (m *Model) finish() {
	if m.saved {
		return
	}
	m.saved = true
	if m.chronicle != nil {
		//nolint:errcheck // Best-effort close, the run is still recorded
		m.chronicle.Close()
	}
	if m.store != nil {
		m.runID, m.saveErr = m.session.Save(m.store)
	}
}

// selectedProject returns the project under the table cursor.
func (m Model) selectedProject() *sim.Construction {
	projects := m.session.City.Projects()
	i := m.projects.Cursor()
	if i < 0 || i >= len(projects) {
		return nil
	}
	return projects[i]
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	return m.render()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the history ID of the saved run, or 0.
func (m Model) RunID() int64 {
	return m.runID
}

// SaveErr returns the error from recording the run, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// Run starts the Bubble Tea program for the session. The alternate screen
// buffer is used when fullscreen is set.
// Returns the final model so the caller can report the saved run.
func Run(session *core.Session, store *storage.Store, ch *chronicle.Chronicle, fullscreen bool) (Model, error) {
	model := NewModel(session, store, ch)

	var opts []tea.ProgramOption
	if fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
