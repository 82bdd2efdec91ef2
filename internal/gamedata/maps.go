package gamedata

import (
	"errors"
	"fmt"
)

// Map tile characters.
const (
	TileFloor     = '.'
	TileWall      = '#'
	TileEncounter = '~'
	TileHealer    = '@'
)

// Point is a tile coordinate in a map file.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// MapDef is an overworld map loaded from YAML. Rows are read top to bottom;
// any character other than a known tile is treated as floor.
type MapDef struct {
	Name  string   `yaml:"name"`
	Spawn Point    `yaml:"spawn"`
	Tiles []string `yaml:"tiles"`
}

// Width returns the length of the longest row.
func (m *MapDef) Width() int {
	w := 0
	for _, row := range m.Tiles {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of rows.
func (m *MapDef) Height() int {
	return len(m.Tiles)
}

// At returns the tile character at x, y. Out of range reads as a wall.
func (m *MapDef) At(x, y int) byte {
	if y < 0 || y >= len(m.Tiles) || x < 0 || x >= len(m.Tiles[y]) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// Validate checks that the map has rows and a walkable spawn.
func (m *MapDef) Validate() error {
	if len(m.Tiles) == 0 {
		return errors.New("map has no tiles")
	}
	switch m.At(m.Spawn.X, m.Spawn.Y) {
	case TileWall, TileHealer:
		return fmt.Errorf("spawn %d,%d is not walkable", m.Spawn.X, m.Spawn.Y)
	}
	return nil
}

// LoadMap loads maps/<name>.yaml from the embedded filesystem.
func LoadMap(name string) (*MapDef, error) {
	def, err := LoadYAML[MapDef]("maps/" + name + ".yaml")
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	return &def, nil
}
