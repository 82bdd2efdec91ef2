package combat

import (
	"math"
	"time"

	"github.com/samdwyer/goblinrun/internal/timer"
)

const (
	// DefaultAttackPeriod is how long each attack animation lasts.
	DefaultAttackPeriod = 700 * time.Millisecond
	// DefaultFlashPeriod is the enemy blink period in seconds.
	DefaultFlashPeriod = 0.1
	// DefaultShakeAmplitude is the peak screen shake offset in cells.
	DefaultShakeAmplitude = 0.5
)

// AttackEffects drives the blink and shake animations of both attack
// phases. One repeating timer is shared by the two phases and is never
// reset at a phase boundary: each animation ends on the next period
// boundary of the shared timer.
type AttackEffects struct {
	Timer        *timer.Timer
	Flash        float64 // Blink period, seconds
	Shake        float64 // Peak shake offset
	CurrentShake float64
}

// NewAttackEffects creates the effect controller for one battle.
func NewAttackEffects(period time.Duration, flash, shake float64) *AttackEffects {
	if period <= 0 {
		period = DefaultAttackPeriod
	}
	if flash <= 0 {
		flash = DefaultFlashPeriod
	}
	return &AttackEffects{
		Timer: timer.New(period, timer.Repeating),
		Flash: flash,
		Shake: shake,
	}
}

// Update advances the animation for the given phase.
// It returns whether the enemy should be drawn and whether the animation
// completed on this tick. Phases without an animation are ignored.
func (fx *AttackEffects) Update(phase Phase, dt time.Duration) (visible, done bool) {
	if !phase.IsAttackAnimation() {
		return true, false
	}

	fx.Timer.Tick(dt)
	done = fx.Timer.JustFinished()

	switch phase.Step {
	case StepPlayerAttack:
		if done {
			return true, true
		}
		elapsed := fx.Timer.Elapsed().Seconds()
		return math.Mod(elapsed, fx.Flash) > fx.Flash/2, false

	default:
		if done {
			fx.CurrentShake = 0
			return true, true
		}
		fx.CurrentShake = fx.Shake * math.Sin(2*math.Pi*fx.Timer.Percent())
		return true, false
	}
}
