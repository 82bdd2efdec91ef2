package combat

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/event"
	"github.com/samdwyer/goblinrun/internal/mode"
	"github.com/samdwyer/goblinrun/internal/telemetry"
	"github.com/samdwyer/goblinrun/internal/transition"
)

// DefaultXPReward is the experience granted on victory.
const DefaultXPReward = 10

// Cues plays the audio feedback for combat events.
type Cues interface {
	PlayHit()
	PlaySuccess()
}

type silentCues struct{}

func (silentCues) PlayHit()     {}
func (silentCues) PlaySuccess() {}

// Config holds the tunables of a battle.
type Config struct {
	XPReward       int
	AttackPeriod   time.Duration
	FlashPeriod    float64
	ShakeAmplitude float64
}

// DefaultConfig returns the stock battle tunables.
func DefaultConfig() Config {
	return Config{
		XPReward:       DefaultXPReward,
		AttackPeriod:   DefaultAttackPeriod,
		FlashPeriod:    DefaultFlashPeriod,
		ShakeAmplitude: DefaultShakeAmplitude,
	}
}

// Option customizes a Battle.
type Option func(*Battle)

// WithConfig overrides the battle tunables.
func WithConfig(cfg Config) Option {
	return func(b *Battle) { b.cfg = cfg }
}

// WithDecider sets how the enemy picks its damage.
func WithDecider(d Decider) Option {
	return func(b *Battle) { b.decider = d }
}

// WithCues sets the audio cues.
func WithCues(c Cues) Option {
	return func(b *Battle) { b.cues = c }
}

// WithLogger sets the battle logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Battle) { b.log = log }
}

// Battle is the turn state machine for one encounter. It exists from
// combat entry until combat exit and owns the current phase.
type Battle struct {
	Player  Hero
	Enemy   Combatant
	Effects *AttackEffects

	phase       Phase
	fights      *event.Queue[FightEvent]
	transitions *transition.Controller
	decider     Decider
	cues        Cues
	log         *zap.Logger
	cfg         Config

	inputEnabled bool
	committed    bool // Player already acted this turn
	exiting      bool // Exit fade requested
	fled         bool
	ended        bool
	outcome      string // Frozen by End
	enemyVisible bool

	TurnCount   int
	LastMessage string
}

// NewBattle starts a battle between player and enemy. The exit fade is
// requested on transitions. The battle begins in PlayerTurn.
func NewBattle(ctx context.Context, player Hero, enemy Combatant, transitions *transition.Controller, opts ...Option) *Battle {
	b := &Battle{
		Player:       player,
		Enemy:        enemy,
		phase:        Phase{Step: -1},
		fights:       event.NewQueue[FightEvent](),
		transitions:  transitions,
		decider:      AttackDecider{},
		cues:         silentCues{},
		log:          zap.NewNop(),
		cfg:          DefaultConfig(),
		enemyVisible: true,
		LastMessage:  fmt.Sprintf("A wild %s appears!", enemy.GetName()),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Effects = NewAttackEffects(b.cfg.AttackPeriod, b.cfg.FlashPeriod, b.cfg.ShakeAmplitude)

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("enemy", enemy.GetName()),
		attribute.Int("enemy_hp", enemy.GetHP()),
		attribute.Int("player_hp", player.GetHP()),
	)
	span.End()

	b.log.Info("combat started",
		zap.String("enemy", enemy.GetName()),
		zap.Int("enemy_hp", enemy.GetHP()),
		zap.Int("player_hp", player.GetHP()),
	)

	b.setPhase(PhasePlayerTurn)
	return b
}

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.phase }

// InputEnabled reports whether the Fight and Run buttons accept input.
func (b *Battle) InputEnabled() bool { return b.inputEnabled }

// EnemyVisible reports whether the enemy sprite is drawn this frame.
func (b *Battle) EnemyVisible() bool { return b.enemyVisible }

// Shake returns the current screen shake offset.
func (b *Battle) Shake() float64 { return b.Effects.CurrentShake }

// Exiting reports whether the exit fade has been requested.
func (b *Battle) Exiting() bool { return b.exiting }

// Pending returns the number of unresolved fight events.
func (b *Battle) Pending() int { return b.fights.Len() }

// Fight makes the player attack the enemy. It only acts once per player
// turn and returns whether the attack was queued.
func (b *Battle) Fight() bool {
	if b.phase != PhasePlayerTurn || !b.inputEnabled || b.committed || b.exiting {
		return false
	}
	b.committed = true
	b.fights.Send(FightEvent{
		Target: b.Enemy,
		Damage: b.Player.GetAttack(),
		Next:   PhasePlayerAttack,
	})
	return true
}

// Run flees the battle by requesting the exit fade. The turn machine is
// left as is; teardown happens when combat is popped.
func (b *Battle) Run() bool {
	if b.phase != PhasePlayerTurn || !b.inputEnabled || b.committed || b.exiting {
		return false
	}
	b.fled = true
	b.requestExit()
	b.LastMessage = "You got away safely."
	b.log.Info("player fled", zap.String("enemy", b.Enemy.GetName()))
	return true
}

// Update runs one combat tick: the enemy decision, then damage resolution,
// then attack effects. An ended battle no longer changes.
func (b *Battle) Update(ctx context.Context, dt time.Duration) {
	if b.ended {
		return
	}
	b.decideEnemyTurn()
	b.resolveFights(ctx)
	b.updateEffects(dt)
}

func (b *Battle) decideEnemyTurn() {
	if b.phase != PhaseEnemyTurn(false) {
		return
	}
	damage := b.decider.Decide(b.Enemy, b.Player)
	b.fights.Send(FightEvent{
		Target: b.Player,
		Damage: damage,
		Next:   PhaseEnemyAttack,
	})
	b.setPhase(PhaseEnemyTurn(true))
}

func (b *Battle) resolveFights(ctx context.Context) {
	for _, ev := range b.fights.Drain() {
		if b.phase == PhaseVictory {
			b.log.Debug("fight event dropped after victory", zap.String("target", ev.Target.GetName()))
			continue
		}
		b.resolve(ctx, ev)
	}
}

func (b *Battle) resolve(ctx context.Context, ev FightEvent) {
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.turn")
	defer span.End()

	res := Resolve(ev)
	b.TurnCount++
	b.cues.PlayHit()

	span.SetAttributes(
		attribute.String("target", ev.Target.GetName()),
		attribute.Int("damage", res.Damage),
		attribute.Int("loss", res.Loss),
		attribute.Int("hp_after", res.HPAfter),
		attribute.Int("turn", b.TurnCount),
	)
	b.log.Debug("fight resolved",
		zap.String("target", ev.Target.GetName()),
		zap.Int("damage", res.Damage),
		zap.Int("loss", res.Loss),
		zap.Int("hp", res.HPAfter),
	)

	if res.Loss > 0 {
		b.LastMessage = fmt.Sprintf("%s takes %d damage!", ev.Target.GetName(), res.Loss)
	} else {
		b.LastMessage = fmt.Sprintf("%s shrugs off the blow.", ev.Target.GetName())
	}

	if res.Defeated {
		span.SetAttributes(attribute.Bool("defeated", true))
		b.requestExit()
		b.setPhase(PhaseVictory)
		return
	}
	b.setPhase(ev.Next)
}

func (b *Battle) updateEffects(dt time.Duration) {
	if !b.phase.IsAttackAnimation() {
		return
	}
	visible, done := b.Effects.Update(b.phase, dt)
	b.enemyVisible = visible
	if !done {
		return
	}
	if b.phase == PhasePlayerAttack {
		b.setPhase(PhaseEnemyTurn(false))
	} else {
		b.setPhase(PhasePlayerTurn)
	}
}

func (b *Battle) requestExit() {
	if b.exiting {
		return
	}
	b.exiting = true
	b.inputEnabled = false
	if b.transitions != nil {
		b.transitions.Request(mode.None)
	}
}

// setPhase runs the exit hook of the old phase and the entry hook of the
// new one. Setting the current phase again is a no-op.
func (b *Battle) setPhase(next Phase) {
	if next == b.phase {
		return
	}
	prev := b.phase

	if prev.Step == StepPlayerTurn {
		b.inputEnabled = false
	}

	b.phase = next
	b.log.Debug("combat phase", zap.Stringer("from", prev), zap.Stringer("to", next))

	switch next.Step {
	case StepPlayerTurn:
		b.committed = false
		b.enemyVisible = true
		b.inputEnabled = !b.exiting
	case StepVictory:
		b.enemyVisible = true
		b.award()
	}
}

func (b *Battle) award() {
	total := b.Player.GainXP(b.cfg.XPReward)
	b.cues.PlaySuccess()

	if b.Player.IsAlive() {
		b.LastMessage = fmt.Sprintf("Victory! %s is defeated. +%dxp", b.Enemy.GetName(), b.cfg.XPReward)
	} else {
		b.LastMessage = fmt.Sprintf("You collapse... +%dxp", b.cfg.XPReward)
	}
	b.log.Info(fmt.Sprintf("Player gains %dxp for a total of %dxp!", b.cfg.XPReward, total),
		zap.String("enemy", b.Enemy.GetName()),
		zap.Int("xp", total),
	)
}

// Outcome describes how the battle ended so far. After End it no longer
// changes.
func (b *Battle) Outcome() string {
	if b.ended {
		return b.outcome
	}
	switch {
	case b.phase == PhaseVictory && b.Player.IsAlive():
		return "victory"
	case b.phase == PhaseVictory:
		return "defeat"
	case b.fled:
		return "fled"
	default:
		return "abandoned"
	}
}

// End records the end of the battle and drops anything still queued.
// Calling it more than once has no further effect.
func (b *Battle) End(ctx context.Context) {
	if b.ended {
		return
	}
	b.outcome = b.Outcome()
	b.ended = true
	b.fights.Clear()
	b.inputEnabled = false

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", b.outcome),
		attribute.Int("turns_taken", b.TurnCount),
		attribute.Int("player_hp_remaining", b.Player.GetHP()),
	)
	span.End()

	b.log.Info("combat ended",
		zap.String("outcome", b.outcome),
		zap.Int("turns", b.TurnCount),
	)
}

// Ended reports whether End was called.
func (b *Battle) Ended() bool { return b.ended }
