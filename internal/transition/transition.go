// Package transition implements the full-screen fade that gates every mode
// change.
package transition

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/mode"
	"github.com/samdwyer/goblinrun/internal/telemetry"
	"github.com/samdwyer/goblinrun/internal/timer"
)

const (
	// DefaultDuration is the full length of a fade.
	DefaultDuration = time.Second

	// Color is the fade overlay color.
	Color = "#432E3B"

	fadePeak = 1.25
)

// Requester receives the mode change a fade triggers at its midpoint.
// *mode.Stack satisfies it.
type Requester interface {
	Request(next mode.Mode)
}

// Fade is one transient screen fade.
type Fade struct {
	Alpha     float64
	Triggered bool
	Next      mode.Mode // mode.None pops the current mode
	Timer     *timer.Timer
}

// Done reports whether the fade has run to completion.
func (f *Fade) Done() bool {
	return f.Timer.Finished()
}

// Controller owns the active fades and applies their mode changes.
type Controller struct {
	fades    []*Fade
	target   Requester
	duration time.Duration
	log      *zap.Logger
}

// NewController creates a controller that sends mode changes to target.
// A non-positive duration falls back to DefaultDuration.
func NewController(target Requester, duration time.Duration, log *zap.Logger) *Controller {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		target:   target,
		duration: duration,
		log:      log,
	}
}

// Request spawns a fade that pushes next at its midpoint, or pops the
// current mode when next is mode.None.
func (c *Controller) Request(next mode.Mode) *Fade {
	f := &Fade{
		Next:  next,
		Timer: timer.New(c.duration, timer.Once),
	}
	c.fades = append(c.fades, f)
	c.log.Debug("transition requested", zap.Stringer("next", next))
	return f
}

// Update advances every fade by dt.
func (c *Controller) Update(ctx context.Context, dt time.Duration) {
	if len(c.fades) == 0 {
		return
	}

	for _, f := range c.fades {
		f.Timer.Tick(dt)
		p := f.Timer.Percent()
		f.Alpha = fadeAlpha(p)

		if p > 0.5 && !f.Triggered {
			f.Triggered = true
			c.trigger(ctx, f)
		}
	}

	c.fades = slices.DeleteFunc(c.fades, func(f *Fade) bool {
		return f.Timer.JustFinished()
	})
}

func (c *Controller) trigger(ctx context.Context, f *Fade) {
	_, span := telemetry.Tracer("transition").Start(ctx, "transition.midpoint")
	span.SetAttributes(
		attribute.String("transition.next", f.Next.String()),
		attribute.Bool("transition.pop", f.Next == mode.None),
		attribute.Int64("transition.elapsed_ms", f.Timer.Elapsed().Milliseconds()),
	)
	span.End()

	c.target.Request(f.Next)
}

// Alpha returns the opacity of the strongest active fade.
func (c *Controller) Alpha() float64 {
	alpha := 0.0
	for _, f := range c.fades {
		alpha = max(alpha, f.Alpha)
	}
	return alpha
}

// Active returns the number of fades still running.
func (c *Controller) Active() int {
	return len(c.fades)
}

// Busy reports whether any fade has not yet reached its midpoint.
func (c *Controller) Busy() bool {
	for _, f := range c.fades {
		if !f.Triggered {
			return true
		}
	}
	return false
}
