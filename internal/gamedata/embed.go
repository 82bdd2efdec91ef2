// Package gamedata provides embedded game data and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds the JSON definitions and YAML maps at build time.
//
//go:embed *.json maps/*.yaml
var dataFS embed.FS
