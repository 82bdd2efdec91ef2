package game

import (
	"context"
	"time"

	"github.com/samdwyer/goblinrun/internal/input"
	"github.com/samdwyer/goblinrun/internal/mode"
)

// menuScene is the title screen. Its Start button fades into the overworld
// and then stays disabled so it cannot be pressed twice.
type menuScene struct {
	g            *Game
	startEnabled bool
}

func (s *menuScene) Enter(context.Context) {
	s.startEnabled = true
}

func (s *menuScene) Exit(context.Context)   {}
func (s *menuScene) Pause(context.Context)  {}
func (s *menuScene) Resume(context.Context) {}

func (s *menuScene) Update(_ context.Context, _ time.Duration) {
	if !s.startEnabled || !s.g.input.JustPressed(input.ActionConfirm) {
		return
	}
	s.startEnabled = false
	s.g.transitions.Request(mode.Overworld)
	s.g.log.Info("start pressed")
}
