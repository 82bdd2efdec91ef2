// Package timer provides the countdown primitive used by fades, attack
// effects and encounter cooldowns.
package timer

import "time"

// Mode controls what happens when a timer reaches its duration.
type Mode int

const (
	// Once stops at the duration and stays finished.
	Once Mode = iota
	// Repeating wraps back to zero and fires again every period.
	Repeating
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Once:
		return "once"
	case Repeating:
		return "repeating"
	default:
		return "unknown"
	}
}

// Timer tracks elapsed game time against a duration.
// The duration must be greater than zero.
type Timer struct {
	duration     time.Duration
	elapsed      time.Duration
	mode         Mode
	finished     bool
	justFinished bool
	timesFired   int
}

// New creates a timer with the given duration and mode.
func New(duration time.Duration, mode Mode) *Timer {
	return &Timer{
		duration: duration,
		mode:     mode,
	}
}

// FromSeconds creates a timer from a duration expressed in seconds.
func FromSeconds(secs float64, mode Mode) *Timer {
	return New(time.Duration(secs*float64(time.Second)), mode)
}

// Tick advances the timer by dt.
// A once timer that already finished does not move and never reports
// JustFinished again.
func (t *Timer) Tick(dt time.Duration) {
	t.justFinished = false
	t.timesFired = 0

	if t.mode == Once && t.finished {
		return
	}
	if dt <= 0 {
		if t.mode == Repeating {
			t.finished = false
		}
		return
	}

	t.elapsed += dt
	if t.elapsed < t.duration {
		if t.mode == Repeating {
			t.finished = false
		}
		return
	}

	switch t.mode {
	case Repeating:
		t.timesFired = int(t.elapsed / t.duration)
		t.elapsed %= t.duration
	default:
		t.timesFired = 1
		t.elapsed = t.duration
	}
	t.finished = true
	t.justFinished = true
}

// JustFinished reports whether the last Tick crossed the duration boundary.
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

// Finished reports whether a once timer has completed, or whether a
// repeating timer fired on the last tick.
func (t *Timer) Finished() bool {
	return t.finished
}

// TimesFinishedThisTick returns how many periods the last Tick completed.
// Only repeating timers can report more than one.
func (t *Timer) TimesFinishedThisTick() int {
	return t.timesFired
}

// Elapsed returns the time elapsed in the current period.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Duration returns the timer period.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// SetDuration changes the period without touching elapsed time.
// Safe to call between firings.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
}

// Mode returns the timer mode.
func (t *Timer) Mode() Mode {
	return t.mode
}

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	f := float64(t.elapsed) / float64(t.duration)
	if f > 1 {
		return 1
	}
	return f
}

// Percent is an alias of Fraction.
func (t *Timer) Percent() float64 {
	return t.Fraction()
}

// Reset rewinds the timer to zero and clears finished state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
	t.timesFired = 0
}
