package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/config"
	"github.com/samdwyer/goblinrun/internal/gamedata"
	"github.com/samdwyer/goblinrun/internal/scripting"
	"github.com/samdwyer/goblinrun/internal/world"
)

const (
	defaultHero  = "hero"
	defaultEnemy = "goblin"
)

// newRNG returns the game's random source. A seed of 0 means a random seed
// is taken from the clock; the seed actually used is returned for logging.
func newRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// loadWorld builds the overworld named in the config: either an embedded
// map file or a freshly generated one.
func loadWorld(ctx context.Context, name string, rng *rand.Rand) (*world.Map, error) {
	if name == config.GeneratedMap {
		return world.Generate(ctx, world.DefaultWidth, world.DefaultHeight, rng), nil
	}
	def, err := gamedata.LoadMap(name)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", name, err)
	}
	m, err := world.FromDef(def)
	if err != nil {
		return nil, fmt.Errorf("build map %q: %w", name, err)
	}
	return m, nil
}

// newDecider loads the Lua enemy hook. Without it enemies simply attack.
func newDecider(script string, log *zap.Logger) (combat.Decider, func()) {
	engine, err := scripting.NewEngine(script, log)
	if err != nil {
		log.Warn("lua unavailable, enemies use their attack stat", zap.Error(err))
		return combat.AttackDecider{}, nil
	}
	return engine, engine.Close
}

// battleConfig converts the [combat] section into battle tunables.
func battleConfig(c config.CombatConfig) combat.Config {
	return combat.Config{
		XPReward:       c.XPReward,
		AttackPeriod:   c.AttackPeriod,
		FlashPeriod:    c.FlashPeriod,
		ShakeAmplitude: c.ShakeAmplitude,
	}
}
