package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/audio"
	"github.com/samdwyer/goblinrun/internal/encounter"
	"github.com/samdwyer/goblinrun/internal/input"
	"github.com/samdwyer/goblinrun/internal/mode"
)

// HealerLine is what the healer says after restoring the player.
const HealerLine = "Heal, heal, HEAL!"

// overworldScene walks the player around the map, starts random
// encounters in grass and runs the healer dialog.
type overworldScene struct {
	g       *Game
	music   audio.Channel
	trigger *encounter.Trigger
	dialog  string
}

func newOverworldScene(g *Game) *overworldScene {
	enc := g.cfg.Encounter
	return &overworldScene{
		g:       g,
		music:   g.audio.Overworld,
		trigger: encounter.NewTrigger(enc.Initial, enc.Min, enc.Max, g.rng),
	}
}

func (s *overworldScene) Enter(context.Context) {
	s.g.player.Show()
	s.music.Play()
}

func (s *overworldScene) Exit(context.Context) {
	s.g.player.Hide()
	s.music.Stop()
}

func (s *overworldScene) Pause(context.Context) {
	p := s.g.player
	p.Hide()
	p.Active = false
	s.g.input.Release()
	s.music.Pause()
}

func (s *overworldScene) Resume(context.Context) {
	p := s.g.player
	if !p.IsAlive() {
		// A lost battle sends the player back to the spawn point.
		p.HealFull()
		p.X, p.Y = float64(s.g.world.SpawnX), float64(s.g.world.SpawnY)
		s.g.log.Info("player revived at spawn", zap.Int("hp", p.GetHP()))
	}
	p.Show()
	s.music.Resume()
}

func (s *overworldScene) Update(ctx context.Context, dt time.Duration) {
	g := s.g
	p := g.player

	if s.dialog != "" {
		if g.input.AnyJustPressed(input.ActionConfirm, input.ActionInteract) {
			s.dialog = ""
			p.Active = true
		}
		return
	}
	if !p.Active {
		return
	}

	if g.input.JustPressed(input.ActionInteract) && g.world.HealerNear(p.X, p.Y) {
		healed := p.HealFull()
		s.dialog = HealerLine
		p.Active = false
		g.log.Info("healer visited", zap.Int("healed", healed), zap.Int("hp", p.GetHP()))
		return
	}

	dx, dy := g.input.Direction()
	moved := p.Move(dx, dy, dt, g.world)
	if !s.trigger.Update(ctx, dt, moved, g.world.IsEncounterZone(p.X, p.Y)) {
		return
	}

	p.Active = false
	g.transitions.Request(mode.Combat)
	x, y := p.Tile()
	g.log.Info("encounter", zap.Int("x", x), zap.Int("y", y), zap.Int("count", s.trigger.Fired()))
}
