package world

import (
	"errors"
	"math"

	"github.com/samdwyer/goblinrun/internal/gamedata"
)

const (
	// HealerRange is how close, in tiles, the player must stand to talk to
	// the healer.
	HealerRange = 1.5

	// bodyHalf is half the player's collision box. It is a sixteenth of a
	// tile smaller than a tile so the player fits through one-tile gaps.
	bodyHalf = (1 - 1.0/16) / 2
	tileHalf = 0.5
)

// Map is the overworld grid.
type Map struct {
	Name   string
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room // Only set for generated maps

	SpawnX, SpawnY int
	healers        [][2]int
}

// NewMap creates a map of the given size filled with walls.
func NewMap(width, height int) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Map{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// FromDef builds a map from a loaded map definition.
func FromDef(def *gamedata.MapDef) (*Map, error) {
	if def == nil {
		return nil, errors.New("nil map definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	m := NewMap(def.Width(), def.Height())
	m.Name = def.Name
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.SetTile(x, y, ParseTile(def.At(x, y)))
		}
	}
	m.SpawnX, m.SpawnY = def.Spawn.X, def.Spawn.Y
	return m, nil
}

// SetTile places a tile, tracking healer positions.
func (m *Map) SetTile(x, y int, t Tile) {
	if !m.inBounds(x, y) {
		return
	}
	if m.Tiles[y][x] == TileHealer {
		for i, h := range m.healers {
			if h == [2]int{x, y} {
				m.healers = append(m.healers[:i], m.healers[i+1:]...)
				break
			}
		}
	}
	m.Tiles[y][x] = t
	if t == TileHealer {
		m.healers = append(m.healers, [2]int{x, y})
	}
}

// GetTile returns the tile at the given position. Outside the map is wall.
func (m *Map) GetTile(x, y int) Tile {
	if !m.inBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// IsPassable returns true if the given tile can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	return m.GetTile(x, y).IsPassable()
}

// Healers returns the healer tile positions.
func (m *Map) Healers() [][2]int {
	return m.healers
}

// Blocks reports whether a player body centered at x, y overlaps a tile
// that is not passable.
func (m *Map) Blocks(x, y float64) bool {
	return m.overlapsAny(x, y, func(t Tile) bool { return !t.IsPassable() })
}

// IsEncounterZone reports whether a player body centered at x, y overlaps
// any encounter tile.
func (m *Map) IsEncounterZone(x, y float64) bool {
	return m.overlapsAny(x, y, Tile.IsEncounter)
}

// HealerNear reports whether a healer stands within HealerRange of x, y.
func (m *Map) HealerNear(x, y float64) bool {
	for _, h := range m.healers {
		if math.Hypot(float64(h[0])-x, float64(h[1])-y) < HealerRange {
			return true
		}
	}
	return false
}

func (m *Map) overlapsAny(x, y float64, match func(Tile) bool) bool {
	reach := bodyHalf + tileHalf
	for ty := int(math.Floor(y - reach)); ty <= int(math.Ceil(y+reach)); ty++ {
		for tx := int(math.Floor(x - reach)); tx <= int(math.Ceil(x+reach)); tx++ {
			if math.Abs(float64(tx)-x) >= reach || math.Abs(float64(ty)-y) >= reach {
				continue
			}
			if match(m.GetTile(tx, ty)) {
				return true
			}
		}
	}
	return false
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}
