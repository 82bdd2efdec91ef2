package mode

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

// recordingScene logs lifecycle calls as "<name>.<call>".
type recordingScene struct {
	name    string
	calls   *[]string
	updates int
}

func (r *recordingScene) Enter(context.Context)  { *r.calls = append(*r.calls, r.name+".enter") }
func (r *recordingScene) Exit(context.Context)   { *r.calls = append(*r.calls, r.name+".exit") }
func (r *recordingScene) Pause(context.Context)  { *r.calls = append(*r.calls, r.name+".pause") }
func (r *recordingScene) Resume(context.Context) { *r.calls = append(*r.calls, r.name+".resume") }
func (r *recordingScene) Update(context.Context, time.Duration) {
	r.updates++
}

func newTestStack() (*Stack, map[Mode]*recordingScene, *[]string) {
	calls := &[]string{}
	s := NewStack(MainMenu, nil)
	scenes := map[Mode]*recordingScene{
		MainMenu:  {name: "menu", calls: calls},
		Overworld: {name: "overworld", calls: calls},
		Combat:    {name: "combat", calls: calls},
	}
	for m, sc := range scenes {
		s.Register(m, sc)
	}
	return s, scenes, calls
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{None, "none"},
		{MainMenu, "main_menu"},
		{Overworld, "overworld"},
		{Combat, "combat"},
		{Mode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestStackPushPausesAndEnters(t *testing.T) {
	ctx := context.Background()
	s, _, calls := newTestStack()
	s.Start(ctx)

	s.Push(ctx, Overworld)
	s.Push(ctx, Combat)

	want := []string{
		"menu.enter",
		"menu.pause", "overworld.enter",
		"overworld.pause", "combat.enter",
	}
	if !slices.Equal(*calls, want) {
		t.Errorf("calls = %v, want %v", *calls, want)
	}
	if s.Top() != Combat {
		t.Errorf("Top() = %v, want combat", s.Top())
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestStackPopResumesBeneath(t *testing.T) {
	ctx := context.Background()
	s, _, calls := newTestStack()
	s.Push(ctx, Overworld)
	s.Push(ctx, Combat)
	*calls = nil

	if err := s.Pop(ctx); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}

	want := []string{"combat.exit", "overworld.resume"}
	if !slices.Equal(*calls, want) {
		t.Errorf("calls = %v, want %v", *calls, want)
	}
	if !s.IsActive(Overworld) {
		t.Errorf("Top() = %v, want overworld", s.Top())
	}
}

func TestStackPopLastModeFails(t *testing.T) {
	s, _, calls := newTestStack()

	err := s.Pop(context.Background())
	if !errors.Is(err, ErrLastMode) {
		t.Fatalf("Pop() error = %v, want ErrLastMode", err)
	}
	if s.Len() != 1 || s.Top() != MainMenu {
		t.Errorf("stack changed after rejected pop: %v", s.Modes())
	}
	if len(*calls) != 0 {
		t.Errorf("rejected pop should not call scenes, got %v", *calls)
	}
}

func TestStackPushExistingModeResumes(t *testing.T) {
	ctx := context.Background()
	s, _, calls := newTestStack()
	s.Push(ctx, Overworld)
	s.Push(ctx, Combat)
	*calls = nil

	s.Push(ctx, Overworld)

	want := []string{"combat.pause", "overworld.resume"}
	if !slices.Equal(*calls, want) {
		t.Errorf("calls = %v, want %v", *calls, want)
	}
	if got := s.Modes(); !slices.Equal(got, []Mode{MainMenu, Combat, Overworld}) {
		t.Errorf("Modes() = %v", got)
	}
}

func TestStackRequestAppliesOnFlush(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStack()

	s.Request(Overworld)
	if s.Top() != MainMenu {
		t.Fatal("Request() must not change the stack before Flush()")
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if s.Top() != Overworld {
		t.Errorf("Top() = %v, want overworld", s.Top())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() after Flush() = %d, want 0", s.Pending())
	}
}

func TestStackFlushReportsRejectedPop(t *testing.T) {
	s, _, _ := newTestStack()
	s.Request(None)

	err := s.Flush(context.Background())
	if !errors.Is(err, ErrLastMode) {
		t.Errorf("Flush() error = %v, want wrapped ErrLastMode", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStackUpdateOnlyTicksTop(t *testing.T) {
	ctx := context.Background()
	s, scenes, _ := newTestStack()
	s.Push(ctx, Overworld)

	s.Update(ctx, 16*time.Millisecond)
	s.Update(ctx, 16*time.Millisecond)

	if scenes[Overworld].updates != 2 {
		t.Errorf("overworld updates = %d, want 2", scenes[Overworld].updates)
	}
	if scenes[MainMenu].updates != 0 {
		t.Errorf("paused menu received %d updates, want 0", scenes[MainMenu].updates)
	}
}

// Scenario: popping Combat off [MainMenu, Overworld, Combat] resumes Overworld.
func TestStackPopCombatResumesOverworld(t *testing.T) {
	ctx := context.Background()
	s, scenes, _ := newTestStack()
	s.Push(ctx, Overworld)
	s.Push(ctx, Combat)

	s.Request(None)
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := s.Modes(); !slices.Equal(got, []Mode{MainMenu, Overworld}) {
		t.Errorf("Modes() = %v, want [main_menu overworld]", got)
	}
	s.Update(ctx, time.Millisecond)
	if scenes[Overworld].updates != 1 || scenes[Combat].updates != 0 {
		t.Error("overworld should be the only scene receiving updates")
	}
}
