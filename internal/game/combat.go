package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/audio"
	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/entity"
	"github.com/samdwyer/goblinrun/internal/gamedata"
	"github.com/samdwyer/goblinrun/internal/input"
)

// combatScene owns the battle while Combat is on the stack. Entering spawns
// one enemy; exiting despawns it whatever phase the battle is in.
type combatScene struct {
	g      *Game
	music  audio.Channel
	battle *combat.Battle
	enemy  *entity.Enemy
}

func (s *combatScene) Enter(ctx context.Context) {
	g := s.g
	s.enemy = entity.NewEnemyFromDef(s.enemyDef())
	s.battle = combat.NewBattle(ctx, g.player, s.enemy, g.transitions,
		combat.WithConfig(battleConfig(g.cfg.Combat)),
		combat.WithDecider(g.decider),
		combat.WithCues(g.audio),
		combat.WithLogger(g.log.Named("combat")),
	)
	s.music.Play()
}

// enemyDef picks the configured enemy, falling back to the goblin and then
// to any registered enemy.
func (s *combatScene) enemyDef() *gamedata.EnemyDef {
	g := s.g
	if def := g.enemies.GetByID(g.cfg.Combat.Enemy); def != nil {
		return def
	}
	g.log.Warn("unknown enemy, using default",
		zap.String("enemy", g.cfg.Combat.Enemy),
		zap.String("default", defaultEnemy),
	)
	if def := g.enemies.GetByID(defaultEnemy); def != nil {
		return def
	}
	return g.enemies.SpawnRandom(g.rng)
}

func (s *combatScene) Exit(ctx context.Context) {
	if s.battle != nil {
		s.battle.End(ctx)
	}
	s.battle = nil
	s.enemy = nil
	s.music.Stop()
}

func (s *combatScene) Pause(context.Context) {
	s.music.Pause()
}

func (s *combatScene) Resume(context.Context) {
	s.music.Resume()
}

func (s *combatScene) Update(ctx context.Context, dt time.Duration) {
	if s.battle == nil {
		return
	}
	switch {
	case s.g.input.JustPressed(input.ActionFight):
		s.battle.Fight()
	case s.g.input.JustPressed(input.ActionRun):
		s.battle.Run()
	}
	s.battle.Update(ctx, dt)
}
