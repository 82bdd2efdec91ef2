// Package encounter decides when walking through tall grass starts a fight.
package encounter

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/goblinrun/internal/telemetry"
	"github.com/samdwyer/goblinrun/internal/timer"
)

// Default cooldown bounds.
const (
	DefaultInitial = time.Second
	DefaultMin     = time.Second
	DefaultMax     = 3 * time.Second
)

// Trigger counts down while the player keeps moving inside an encounter
// zone. Time spent standing still or outside a zone does not count.
type Trigger struct {
	Timer *timer.Timer
	min   time.Duration
	max   time.Duration
	rng   *rand.Rand
	fired int
}

// NewTrigger creates a trigger that first fires after initial qualifying
// time and is then re-armed with a uniform random cooldown in [min, max]
// at millisecond resolution.
func NewTrigger(initial, min, max time.Duration, rng *rand.Rand) *Trigger {
	if initial <= 0 {
		initial = DefaultInitial
	}
	if min <= 0 {
		min = DefaultMin
	}
	if max < min {
		max = min
	}
	return &Trigger{
		Timer: timer.New(initial, timer.Repeating),
		min:   min,
		max:   max,
		rng:   rng,
	}
}

// Update advances the cooldown when the player moved this tick while
// standing in an encounter zone. It returns true when an encounter starts.
func (t *Trigger) Update(ctx context.Context, dt time.Duration, moved, inZone bool) bool {
	if !moved || !inZone {
		return false
	}

	t.Timer.Tick(dt)
	if !t.Timer.JustFinished() {
		return false
	}

	next := t.nextCooldown()
	t.Timer.SetDuration(next)
	t.fired++

	_, span := telemetry.Tracer("encounter").Start(ctx, "encounter.trigger")
	span.SetAttributes(
		attribute.Int("encounter.count", t.fired),
		attribute.Int64("encounter.next_cooldown_ms", next.Milliseconds()),
	)
	span.End()

	return true
}

func (t *Trigger) nextCooldown() time.Duration {
	spread := (t.max - t.min).Milliseconds()
	return t.min + time.Duration(t.rng.Int63n(spread+1))*time.Millisecond
}

// Fired returns how many encounters this trigger has started.
func (t *Trigger) Fired() int {
	return t.fired
}
