// Package input turns terminal key events into per-tick game actions.
package input

// Action is a logical game input.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionInteract
	ActionFight
	ActionRun
	ActionVolumeUp
	ActionVolumeDown
	ActionQuit
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionConfirm:
		return "confirm"
	case ActionInteract:
		return "interact"
	case ActionFight:
		return "fight"
	case ActionRun:
		return "run"
	case ActionVolumeUp:
		return "volume_up"
	case ActionVolumeDown:
		return "volume_down"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// IsMovement returns true for the four direction actions.
func (a Action) IsMovement() bool {
	return a >= ActionUp && a <= ActionRight
}

// opposite returns the reverse direction, or ActionNone.
func (a Action) opposite() Action {
	switch a {
	case ActionUp:
		return ActionDown
	case ActionDown:
		return ActionUp
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	default:
		return ActionNone
	}
}
