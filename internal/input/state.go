package input

import "time"

// DefaultMoveHold is how long a direction stays held after its key event.
// Terminals report key presses and repeats but never releases.
const DefaultMoveHold = 200 * time.Millisecond

// State collects the actions of one tick and tracks held directions.
type State struct {
	hold    time.Duration
	pressed map[Action]bool
	held    map[Action]time.Duration
}

// NewState creates an input state. A non-positive hold uses
// DefaultMoveHold.
func NewState(hold time.Duration) *State {
	if hold <= 0 {
		hold = DefaultMoveHold
	}
	return &State{
		hold:    hold,
		pressed: make(map[Action]bool),
		held:    make(map[Action]time.Duration),
	}
}

// Press records an action for this tick. Directions are also held, and
// pressing one cancels its opposite.
func (s *State) Press(a Action) {
	if a == ActionNone {
		return
	}
	s.pressed[a] = true
	if a.IsMovement() {
		s.held[a] = s.hold
		delete(s.held, a.opposite())
	}
}

// JustPressed reports whether a was pressed this tick.
func (s *State) JustPressed(a Action) bool {
	return s.pressed[a]
}

// AnyJustPressed reports whether any of the actions was pressed this tick.
func (s *State) AnyJustPressed(actions ...Action) bool {
	for _, a := range actions {
		if s.pressed[a] {
			return true
		}
	}
	return false
}

// Held reports whether a direction is currently held.
func (s *State) Held(a Action) bool {
	return s.held[a] > 0
}

// Direction returns the held movement as dx, dy in {-1, 0, 1}.
func (s *State) Direction() (dx, dy int) {
	if s.Held(ActionLeft) {
		dx--
	}
	if s.Held(ActionRight) {
		dx++
	}
	if s.Held(ActionUp) {
		dy--
	}
	if s.Held(ActionDown) {
		dy++
	}
	return dx, dy
}

// EndTick clears this tick's presses and ages held directions by dt.
func (s *State) EndTick(dt time.Duration) {
	clear(s.pressed)
	for a, left := range s.held {
		if left -= dt; left > 0 {
			s.held[a] = left
		} else {
			delete(s.held, a)
		}
	}
}

// Release drops every held direction.
func (s *State) Release() {
	clear(s.held)
}
