package core

// Action represents a semantic player action, abstracted from physical key presses.
// Front ends translate keys or flags into Inputs; the Session applies the
// ones that touch the colony.
type Action int

const (
	ActionNone Action = iota

	// Colony actions, applied by Session.Apply.
	ActionSetSpeed           // 0-9 - Value is the speed
	ActionTogglePause        // Space - pause or resume at the default speed
	ActionBuild              // Enter on a project - Value is the project, Variant the variant
	ActionEnact              // Enter on a law - Value is the law
	ActionChoose             // Enter on a popup - Value is the choice
	ActionPauseConstruction  // P - Value is the construction
	ActionToggleMaintenance  // M - Value is the construction
	ActionCancelConstruction // X - Value is the construction

	// Navigation actions, handled by the UI.
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionConstructions // C - constructions panel
	ActionLaws          // L - laws panel
	ActionEvents        // E - event log panel
	ActionHelp          // H - help panel
	ActionQuit          // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSetSpeed:
		return "SetSpeed"
	case ActionTogglePause:
		return "TogglePause"
	case ActionBuild:
		return "Build"
	case ActionEnact:
		return "Enact"
	case ActionChoose:
		return "Choose"
	case ActionPauseConstruction:
		return "PauseConstruction"
	case ActionToggleMaintenance:
		return "ToggleMaintenance"
	case ActionCancelConstruction:
		return "CancelConstruction"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionConstructions:
		return "Constructions"
	case ActionLaws:
		return "Laws"
	case ActionEvents:
		return "Events"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Colony reports whether the action changes the colony rather than the view.
func (a Action) Colony() bool {
	return a >= ActionSetSpeed && a <= ActionCancelConstruction
}

// Input is one action with its arguments.
type Input struct {
	Action  Action
	Value   int
	Variant int
}

// Do returns an Input without arguments.
func Do(a Action) Input {
	return Input{Action: a}
}

// With returns an Input carrying a value.
func With(a Action, value int) Input {
	return Input{Action: a, Value: value}
}
