package mode

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/telemetry"
)

// ErrLastMode is returned when a pop would leave the stack empty.
var ErrLastMode = errors.New("mode stack: cannot pop the last mode")

// Scene is the per-mode lifecycle driven by the stack.
//
// Enter runs when a mode is pushed fresh, Exit when it is popped.
// Pause and Resume bracket the time a mode spends under another one:
// its entities persist but Update is not called.
type Scene interface {
	Enter(ctx context.Context)
	Exit(ctx context.Context)
	Pause(ctx context.Context)
	Resume(ctx context.Context)
	Update(ctx context.Context, dt time.Duration)
}

// Stack holds the active modes. The last frame is the one that runs.
// It always holds at least one frame.
type Stack struct {
	frames  []Mode
	scenes  map[Mode]Scene
	pending []Mode
	log     *zap.Logger
}

// NewStack creates a stack whose root frame is root.
// The root scene is not entered until Start is called.
func NewStack(root Mode, log *zap.Logger) *Stack {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stack{
		frames: []Mode{root},
		scenes: make(map[Mode]Scene),
		log:    log,
	}
}

// Register attaches the scene that handles lifecycle calls for m.
func (s *Stack) Register(m Mode, scene Scene) {
	s.scenes[m] = scene
}

// Start enters the root scene.
func (s *Stack) Start(ctx context.Context) {
	if scene := s.scenes[s.frames[0]]; scene != nil {
		scene.Enter(ctx)
	}
}

// Top returns the active mode.
func (s *Stack) Top() Mode {
	return s.frames[len(s.frames)-1]
}

// Len returns the number of frames.
func (s *Stack) Len() int {
	return len(s.frames)
}

// Modes returns a copy of the frames, bottom first.
func (s *Stack) Modes() []Mode {
	return slices.Clone(s.frames)
}

// Contains reports whether m is anywhere in the stack.
func (s *Stack) Contains(m Mode) bool {
	return slices.Contains(s.frames, m)
}

// IsActive reports whether m is the mode receiving updates.
func (s *Stack) IsActive(m Mode) bool {
	return s.Top() == m
}

// Push pauses the current mode and activates m.
// If m is already paused somewhere below, it is moved to the top and resumed
// instead of entered fresh.
func (s *Stack) Push(ctx context.Context, m Mode) {
	ctx, span := telemetry.Tracer("mode").Start(ctx, "mode.push")
	defer span.End()

	prev := s.Top()
	span.SetAttributes(
		attribute.String("mode.from", prev.String()),
		attribute.String("mode.to", m.String()),
	)

	if scene := s.scenes[prev]; scene != nil {
		scene.Pause(ctx)
	}

	if i := slices.Index(s.frames, m); i >= 0 {
		s.frames = slices.Delete(s.frames, i, i+1)
		s.frames = append(s.frames, m)
		if scene := s.scenes[m]; scene != nil {
			scene.Resume(ctx)
		}
		s.log.Info("mode resumed", zap.Stringer("mode", m), zap.Stringer("over", prev))
		return
	}

	s.frames = append(s.frames, m)
	if scene := s.scenes[m]; scene != nil {
		scene.Enter(ctx)
	}
	s.log.Info("mode pushed", zap.Stringer("mode", m), zap.Stringer("over", prev))
}

// Pop exits the active mode and resumes the one beneath it.
func (s *Stack) Pop(ctx context.Context) error {
	if len(s.frames) <= 1 {
		return ErrLastMode
	}

	ctx, span := telemetry.Tracer("mode").Start(ctx, "mode.pop")
	defer span.End()

	top := s.Top()
	s.frames = s.frames[:len(s.frames)-1]
	next := s.Top()
	span.SetAttributes(
		attribute.String("mode.from", top.String()),
		attribute.String("mode.to", next.String()),
	)

	if scene := s.scenes[top]; scene != nil {
		scene.Exit(ctx)
	}
	if scene := s.scenes[next]; scene != nil {
		scene.Resume(ctx)
	}
	s.log.Info("mode popped", zap.Stringer("mode", top), zap.Stringer("resumed", next))
	return nil
}

// Request queues a change to apply at the next Flush.
// None means pop; any other mode is pushed.
func (s *Stack) Request(next Mode) {
	s.pending = append(s.pending, next)
}

// Pending returns the number of queued changes.
func (s *Stack) Pending() int {
	return len(s.pending)
}

// Flush applies queued changes in request order.
// It runs between ticks so every system in a tick sees the same mode.
func (s *Stack) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	pending := s.pending
	s.pending = nil

	var errs []error
	for _, next := range pending {
		if next == None {
			if err := s.Pop(ctx); err != nil {
				s.log.Error("mode pop rejected", zap.Stringer("mode", s.Top()), zap.Error(err))
				errs = append(errs, err)
			}
			continue
		}
		s.Push(ctx, next)
	}
	if len(errs) > 0 {
		return fmt.Errorf("flush mode changes: %w", errors.Join(errs...))
	}
	return nil
}

// Update ticks the active scene only.
func (s *Stack) Update(ctx context.Context, dt time.Duration) {
	if scene := s.scenes[s.Top()]; scene != nil {
		scene.Update(ctx, dt)
	}
}
