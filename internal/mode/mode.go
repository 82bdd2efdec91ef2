// Package mode implements the top-level game mode stack.
package mode

// Mode is a top-level game context.
type Mode int

const (
	// None is not a real mode. As a transition target it means "pop".
	None Mode = iota
	// MainMenu is the title screen.
	MainMenu
	// Overworld is real-time exploration of the map.
	Overworld
	// Combat is the turn-based battle screen.
	Combat
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case MainMenu:
		return "main_menu"
	case Overworld:
		return "overworld"
	case Combat:
		return "combat"
	default:
		return "unknown"
	}
}
