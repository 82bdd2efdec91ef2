package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/audio"
	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/config"
	"github.com/samdwyer/goblinrun/internal/entity"
	"github.com/samdwyer/goblinrun/internal/gamedata"
	"github.com/samdwyer/goblinrun/internal/input"
	"github.com/samdwyer/goblinrun/internal/mode"
	"github.com/samdwyer/goblinrun/internal/telemetry"
	"github.com/samdwyer/goblinrun/internal/transition"
	"github.com/samdwyer/goblinrun/internal/ui"
	"github.com/samdwyer/goblinrun/internal/world"
)

// maxFrame caps the time step after a stall so timers do not jump.
const maxFrame = 250 * time.Millisecond

// Game holds the entire game state. Everything here is owned by the
// goroutine running Run.
type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	rng      *rand.Rand

	modes       *mode.Stack
	transitions *transition.Controller
	input       *input.State
	audio       *audio.Manager
	decider     combat.Decider
	closeScript func()

	enemies *gamedata.EnemyRegistry
	world   *world.Map
	player  *entity.Player

	menu      *menuScene
	overworld *overworldScene
	combat    *combatScene

	running bool
}

// New opens the terminal and creates a game from cfg.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}
	g, err := newGame(ctx, cfg, log, screen, nil)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// newGame wires every subsystem. A nil sound opens the configured audio
// device.
func newGame(ctx context.Context, cfg *config.Config, log *zap.Logger, screen *ui.Screen, sound *audio.Manager) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	rng, seed := newRNG(cfg.Game.Seed)
	span.SetAttributes(attribute.Int64("game.seed", seed))

	heroes, err := gamedata.LoadHeroRegistry()
	if err != nil {
		return nil, fmt.Errorf("load heroes: %w", err)
	}
	hero := heroes.GetByID(defaultHero)
	if hero == nil {
		return nil, fmt.Errorf("hero %q not defined", defaultHero)
	}

	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("load enemies: %w", err)
	}

	m, err := loadWorld(ctx, cfg.Game.Map, rng)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("world.name", m.Name),
		attribute.Int("world.width", m.Width),
		attribute.Int("world.height", m.Height),
	)

	if sound == nil {
		sound = audio.New(cfg.Audio.Enabled, cfg.Audio.Volume, rng, log.Named("audio"))
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		rng:      rng,
		input:    input.NewState(cfg.Game.MoveHold),
		audio:    sound,
		enemies:  enemies,
		world:    m,
		player:   entity.NewPlayer(hero, m.SpawnX, m.SpawnY),
		running:  true,
	}
	g.decider, g.closeScript = newDecider(cfg.Combat.Script, log.Named("lua"))

	g.modes = mode.NewStack(mode.MainMenu, log.Named("mode"))
	g.transitions = transition.NewController(g.modes, cfg.Transition.Duration, log.Named("transition"))

	g.menu = &menuScene{g: g}
	g.overworld = newOverworldScene(g)
	g.combat = &combatScene{g: g, music: sound.Combat}
	g.modes.Register(mode.MainMenu, g.menu)
	g.modes.Register(mode.Overworld, g.overworld)
	g.modes.Register(mode.Combat, g.combat)
	g.modes.Start(ctx)

	log.Info("game initialized",
		zap.Int64("seed", seed),
		zap.String("map", m.Name),
		zap.Int("spawn_x", m.SpawnX),
		zap.Int("spawn_y", m.SpawnY),
	)
	return g, nil
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	screen := g.screen
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.Game.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ev)
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrame)
			last = now
			g.tick(ctx, dt)
		}
	}

	close(stop)
	g.Close()
	return nil
}

// handleEvent folds one terminal event into this tick's input.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.input.Press(input.FromKey(ev))
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// tick advances the game by dt: global keys, the active scene, fades, mode
// changes, then the frame is drawn and the input cleared.
func (g *Game) tick(ctx context.Context, dt time.Duration) {
	if g.input.JustPressed(input.ActionQuit) {
		g.log.Info("quit requested", zap.Stringer("mode", g.modes.Top()))
		g.running = false
		return
	}
	switch {
	case g.input.JustPressed(input.ActionVolumeUp):
		g.log.Debug("volume up", zap.Float64("volume", g.audio.VolumeUp()))
	case g.input.JustPressed(input.ActionVolumeDown):
		g.log.Debug("volume down", zap.Float64("volume", g.audio.VolumeDown()))
	}

	g.modes.Update(ctx, dt)
	g.transitions.Update(ctx, dt)
	if err := g.modes.Flush(ctx); err != nil {
		g.log.Warn("mode change dropped", zap.Error(err))
	}

	g.render()
	g.input.EndTick(dt)
}

// render draws the top mode and the fade overlay.
func (g *Game) render() {
	r := g.renderer
	r.Begin()
	switch g.modes.Top() {
	case mode.MainMenu:
		r.DrawMenu(g.menu.startEnabled)
	case mode.Overworld:
		r.DrawOverworld(g.world, g.player)
		if g.overworld.dialog != "" {
			r.DrawDialog(g.overworld.dialog)
		}
		r.DrawStatus(g.player, g.audio.Volume())
	case mode.Combat:
		if g.combat.battle != nil {
			r.DrawCombat(g.combat.battle, g.combat.enemy)
		}
		r.DrawStatus(g.player, g.audio.Volume())
	}
	r.ApplyFade(g.transitions.Alpha())
	r.End()
}

// Running reports whether the loop should keep going.
func (g *Game) Running() bool {
	return g.running
}

// Close releases the screen, audio device and Lua state.
func (g *Game) Close() {
	if g.closeScript != nil {
		g.closeScript()
		g.closeScript = nil
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
