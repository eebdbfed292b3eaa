package core

// Action represents a semantic UI action, abstracted from physical key presses.
// Screens work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow, k
	ActionDown             // S, Down arrow, j
	ActionLeft             // A, Left arrow, h
	ActionRight            // D, Right arrow, l
	ActionConfirm          // Enter, Space - activate the focused control
	ActionBack             // Escape - leave the current screen
	ActionRandomize        // R - reroll the focused name or seed
	ActionQuit             // Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
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
	case ActionRandomize:
		return "Randomize"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action moves focus.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}
