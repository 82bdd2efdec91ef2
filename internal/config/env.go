package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings that come from the process environment (and .env).
type Env struct {
	ConfigPath       string `env:"GOBLINRUN_CONFIG" envDefault:"goblinrun.toml"`
	Seed             int64  `env:"GOBLINRUN_SEED"`
	LogLevel         string `env:"GOBLINRUN_LOG_LEVEL"`
	HoneycombAPIKey  string `env:"HONEYCOMB_GOBLINRUN_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_GOBLINRUN_DATASET" envDefault:"goblinrun"`
}

// ParseEnv reads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overlays environment overrides onto cfg.
func (e Env) Apply(cfg *Config) {
	if e.Seed != 0 {
		cfg.Game.Seed = e.Seed
	}
	if e.LogLevel != "" {
		cfg.Logging.Level = e.LogLevel
	}
}
