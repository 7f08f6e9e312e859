package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colonia/internal/core"
)

// ColonyKeyMap defines the key bindings of the colony screen.
type ColonyKeyMap struct {
	Speed         key.Binding
	Pause         key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Confirm       key.Binding
	Back          key.Binding
	Constructions key.Binding
	Laws          key.Binding
	Events        key.Binding
	Help          key.Binding
	PauseSite     key.Binding
	Maintain      key.Binding
	Cancel        key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ColonyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Speed, k.Pause, k.Constructions, k.Laws, k.Events, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ColonyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Speed, k.Pause},
		{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Back},
		{k.Constructions, k.Laws, k.Events, k.Help},
		{k.PauseSite, k.Maintain, k.Cancel, k.Quit},
	}
}

// DefaultColonyKeyMap returns default key bindings.
func DefaultColonyKeyMap() ColonyKeyMap {
	return ColonyKeyMap{
		Speed: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "speed"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left", "prev variant"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right", "next variant"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Constructions: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "build"),
		),
		Laws: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "laws"),
		),
		Events: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "events"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "help"),
		),
		PauseSite: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "halt site"),
		),
		Maintain: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "upkeep"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "abandon site"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to colony inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys ColonyKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultColonyKeyMap()}
}

// Keys returns the bindings, for the help footer.
func (km *KeyMapper) Keys() ColonyKeyMap {
	return km.keys
}

// MapKey translates a key message to an input. Construction and choice
// indices are left for the caller to fill in from its selection.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.Do(core.ActionQuit)
	case key.Matches(msg, k.Speed):
		return core.With(core.ActionSetSpeed, int(msg.String()[0]-'0'))
	case key.Matches(msg, k.Pause):
		return core.Do(core.ActionTogglePause)
	case key.Matches(msg, k.Up):
		return core.Do(core.ActionUp)
	case key.Matches(msg, k.Down):
		return core.Do(core.ActionDown)
	case key.Matches(msg, k.Left):
		return core.Do(core.ActionLeft)
	case key.Matches(msg, k.Right):
		return core.Do(core.ActionRight)
	case key.Matches(msg, k.Confirm):
		return core.Do(core.ActionConfirm)
	case key.Matches(msg, k.Back):
		return core.Do(core.ActionBack)
	case key.Matches(msg, k.Constructions):
		return core.Do(core.ActionConstructions)
	case key.Matches(msg, k.Laws):
		return core.Do(core.ActionLaws)
	case key.Matches(msg, k.Events):
		return core.Do(core.ActionEvents)
	case key.Matches(msg, k.Help):
		return core.Do(core.ActionHelp)
	case key.Matches(msg, k.PauseSite):
		return core.Do(core.ActionPauseConstruction)
	case key.Matches(msg, k.Maintain):
		return core.Do(core.ActionToggleMaintenance)
	case key.Matches(msg, k.Cancel):
		return core.Do(core.ActionCancelConstruction)
	}
	return core.Do(core.ActionNone)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionHistory
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionHistory
	}

	return MenuActionNone
}
