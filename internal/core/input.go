package core

// Action represents a semantic player action, abstracted from physical key presses.
// Terminal keys and browser messages both map onto actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter - restart from the game over screen
	ActionRestart        // R key / retry button - restart at any time
	ActionNextColor      // C key - cycle body color (customizable rulesets)
	ActionNextIcon       // E key - cycle head icon (customizable rulesets)
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionRestart:
		return "Restart"
	case ActionNextColor:
		return "NextColor"
	case ActionNextIcon:
		return "NextIcon"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DirectionFromAction returns the movement direction for a directional action.
// The second result is false for every non-directional action.
func DirectionFromAction(a Action) (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return Direction{}, false
}
