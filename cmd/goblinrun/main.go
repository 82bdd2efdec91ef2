// Package main is the entry point for Goblin Run.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/config"
	"github.com/samdwyer/goblinrun/internal/game"
	"github.com/samdwyer/goblinrun/internal/logging"
	"github.com/samdwyer/goblinrun/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_GOBLINRUN_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	env, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	env.Apply(cfg)

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize telemetry when there is somewhere to send it
	if env.HoneycombAPIKey == "" {
		telemetry.Disable()
		logger.Info("telemetry disabled, no Honeycomb API key")
	} else {
		setupOTelEnv(env)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without observability", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	// Create and run game
	g, err := game.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(env config.Env) {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", env.HoneycombAPIKey, env.HoneycombDataset))
}
