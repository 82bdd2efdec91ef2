package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// FromKey maps a key event to an action. Unbound keys return ActionNone.
func FromKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		return fromRune(ev.Rune())
	}
	return ActionNone
}

func fromRune(r rune) Action {
	switch unicode.ToLower(r) {
	case 'w', 'k':
		return ActionUp
	case 's', 'j':
		return ActionDown
	case 'a', 'h':
		return ActionLeft
	case 'd', 'l':
		return ActionRight
	case ' ':
		return ActionConfirm
	case 'e':
		return ActionInteract
	case 'f', '1':
		return ActionFight
	case 'r', '2':
		return ActionRun
	case '+', '=':
		return ActionVolumeUp
	case '-', '_':
		return ActionVolumeDown
	case 'q':
		return ActionQuit
	}
	return ActionNone
}
