// Package config loads game settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where Load looks when no path is configured.
const DefaultPath = "goblinrun.toml"

// GeneratedMap selects the procedural overworld instead of a map file.
const GeneratedMap = "generated"

type Config struct {
	Game       GameConfig       `toml:"game"`
	Combat     CombatConfig     `toml:"combat"`
	Transition TransitionConfig `toml:"transition"`
	Encounter  EncounterConfig  `toml:"encounter"`
	Audio      AudioConfig      `toml:"audio"`
	Logging    LoggingConfig    `toml:"logging"`
}

type GameConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Seed     int64         `toml:"seed"` // 0 picks a seed from the clock
	Map      string        `toml:"map"`  // embedded map name or "generated"
	MoveHold time.Duration `toml:"move_hold"`
}

type CombatConfig struct {
	Enemy          string        `toml:"enemy"`
	XPReward       int           `toml:"xp_reward"`
	AttackPeriod   time.Duration `toml:"attack_period"`
	FlashPeriod    float64       `toml:"flash_period"`    // seconds
	ShakeAmplitude float64       `toml:"shake_amplitude"` // cells
	Script         string        `toml:"script"`          // optional Lua override
}

type TransitionConfig struct {
	Duration time.Duration `toml:"duration"`
}

type EncounterConfig struct {
	Initial time.Duration `toml:"initial"`
	Min     time.Duration `toml:"min"`
	Max     time.Duration `toml:"max"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the settings used when no file overrides them.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			TickRate: time.Second / 60,
			Map:      "meadow",
			MoveHold: 200 * time.Millisecond,
		},
		Combat: CombatConfig{
			Enemy:          "goblin",
			XPReward:       10,
			AttackPeriod:   700 * time.Millisecond,
			FlashPeriod:    0.1,
			ShakeAmplitude: 0.5,
		},
		Transition: TransitionConfig{
			Duration: time.Second,
		},
		Encounter: EncounterConfig{
			Initial: time.Second,
			Min:     time.Second,
			Max:     3 * time.Second,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "goblinrun.log",
		},
	}
}

// Validate rejects settings the game loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.TickRate <= 0 {
		errs = append(errs, errors.New("game.tick_rate must be positive"))
	}
	if c.Transition.Duration <= 0 {
		errs = append(errs, errors.New("transition.duration must be positive"))
	}
	if c.Combat.AttackPeriod <= 0 {
		errs = append(errs, errors.New("combat.attack_period must be positive"))
	}
	if c.Combat.XPReward < 0 {
		errs = append(errs, errors.New("combat.xp_reward must not be negative"))
	}
	if c.Encounter.Min <= 0 || c.Encounter.Max < c.Encounter.Min {
		errs = append(errs, fmt.Errorf("encounter range [%v, %v] is invalid", c.Encounter.Min, c.Encounter.Max))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v outside [0, 1]", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
