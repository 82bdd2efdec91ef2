package game

import (
	"context"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/audio"
	"github.com/samdwyer/goblinrun/internal/config"
	"github.com/samdwyer/goblinrun/internal/input"
	"github.com/samdwyer/goblinrun/internal/mode"
	"github.com/samdwyer/goblinrun/internal/ui"
	"github.com/samdwyer/goblinrun/internal/world"
)

const testFrame = 16 * time.Millisecond

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Game.Seed = 1
	cfg.Audio.Enabled = false
	cfg.Logging.File = ""
	return cfg
}

func newTestGameWithConfig(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sim.SetSize(80, 24)

	sound := audio.NewWithOutput(audio.NewMixerOutput(), cfg.Audio.Volume, rand.New(rand.NewSource(1)), nil)
	g, err := newGame(context.Background(), cfg, zap.NewNop(), screen, sound)
	if err != nil {
		screen.Close()
		t.Fatalf("newGame() error = %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func newTestGame(t *testing.T) *Game {
	return newTestGameWithConfig(t, testConfig())
}

// tickUntil presses the given actions every frame until done reports true.
func tickUntil(t *testing.T, g *Game, done func() bool, press ...input.Action) int {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 2000; i++ {
		if done() {
			return i
		}
		for _, a := range press {
			g.input.Press(a)
		}
		g.tick(ctx, testFrame)
	}
	t.Fatal("condition not reached after 2000 ticks")
	return 0
}

// grassField returns a walled map whose inner rows are all grass.
func grassField(width, height int) *world.Map {
	m := world.NewMap(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			m.SetTile(x, y, world.TileGrass)
		}
	}
	m.SpawnX, m.SpawnY = 2, 2
	return m
}

func TestNewGameStartsOnMainMenu(t *testing.T) {
	g := newTestGame(t)

	if got := g.modes.Modes(); !slices.Equal(got, []mode.Mode{mode.MainMenu}) {
		t.Errorf("Modes() = %v, want [main_menu]", got)
	}
	if !g.menu.startEnabled {
		t.Error("Start button should be enabled on entry")
	}
	if g.player.X != float64(g.world.SpawnX) || g.player.Y != float64(g.world.SpawnY) {
		t.Errorf("player at (%v, %v), want spawn (%d, %d)", g.player.X, g.player.Y, g.world.SpawnX, g.world.SpawnY)
	}
}

func TestStartFadesIntoOverworld(t *testing.T) {
	g := newTestGame(t)

	g.input.Press(input.ActionConfirm)
	g.tick(context.Background(), testFrame)
	if g.menu.startEnabled {
		t.Error("Start button should disable itself once pressed")
	}
	if g.transitions.Active() != 1 {
		t.Fatalf("Active() = %d, want 1 fade", g.transitions.Active())
	}

	// Pressing again during the fade must not queue a second one.
	tickUntil(t, g, func() bool { return g.transitions.Active() == 0 }, input.ActionConfirm)

	if got := g.modes.Modes(); !slices.Equal(got, []mode.Mode{mode.MainMenu, mode.Overworld}) {
		t.Errorf("Modes() = %v, want [main_menu overworld]", got)
	}
	if !g.player.Visible || !g.player.Active {
		t.Error("player should be shown on overworld entry")
	}
	if !g.audio.Overworld.Playing() {
		t.Error("overworld music should be playing")
	}
}

func TestQuitStopsRunning(t *testing.T) {
	g := newTestGame(t)

	g.input.Press(input.ActionQuit)
	g.tick(context.Background(), testFrame)

	if g.Running() {
		t.Error("Running() = true after quit")
	}
}

func TestVolumeKeys(t *testing.T) {
	g := newTestGame(t)
	start := g.audio.Volume()

	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	g.tick(context.Background(), testFrame)
	if got := g.audio.Volume(); got <= start {
		t.Errorf("Volume() = %v after volume up, want > %v", got, start)
	}

	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	g.tick(context.Background(), testFrame)
	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	g.tick(context.Background(), testFrame)
	if got := g.audio.Volume(); got >= start {
		t.Errorf("Volume() = %v after two volume downs, want < %v", got, start)
	}
}

func TestRunReturnsWhenContextDone(t *testing.T) {
	cfg := testConfig()
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sound := audio.NewWithOutput(audio.NewMixerOutput(), cfg.Audio.Volume, rand.New(rand.NewSource(1)), nil)
	g, err := newGame(context.Background(), cfg, nil, screen, sound)
	if err != nil {
		t.Fatalf("newGame() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if g.Running() {
		t.Error("Running() = true after Run returned")
	}
}

func TestNewRNGIsDeterministic(t *testing.T) {
	a, seedA := newRNG(42)
	b, seedB := newRNG(42)
	if seedA != 42 || seedB != 42 {
		t.Fatalf("seeds = %d, %d, want 42", seedA, seedB)
	}
	for i := 0; i < 10; i++ {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}

	if _, seed := newRNG(0); seed == 0 {
		t.Error("zero seed should be replaced")
	}
}

func TestLoadWorld(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))

	m, err := loadWorld(ctx, "meadow", rng)
	if err != nil {
		t.Fatalf("loadWorld(meadow) error = %v", err)
	}
	if len(m.Healers()) != 1 {
		t.Errorf("meadow healers = %d, want 1", len(m.Healers()))
	}

	gen, err := loadWorld(ctx, config.GeneratedMap, rng)
	if err != nil {
		t.Fatalf("loadWorld(generated) error = %v", err)
	}
	if gen.Width != world.DefaultWidth || gen.Height != world.DefaultHeight {
		t.Errorf("generated size = %dx%d", gen.Width, gen.Height)
	}

	if _, err := loadWorld(ctx, "atlantis", rng); err == nil {
		t.Error("expected error for unknown map")
	}
}

func TestNewDeciderFallsBackWithoutScript(t *testing.T) {
	d, closeFn := newDecider("/does/not/exist.lua", zap.NewNop())
	if closeFn != nil {
		t.Error("fallback decider should have nothing to close")
	}
	if _, ok := d.(interface{ Close() }); ok {
		t.Error("expected the plain attack decider")
	}
}
