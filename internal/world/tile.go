// Package world provides the overworld map, its collision rules and the
// procedural generator.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileGrass is passable and can start random encounters.
	TileGrass Tile = '~'
	// TileHealer is the healer NPC; it blocks movement.
	TileHealer Tile = '@'
)

// ParseTile maps a map file character to a tile. Unknown characters are
// floor.
func ParseTile(c byte) Tile {
	switch Tile(c) {
	case TileWall, TileGrass, TileHealer:
		return Tile(c)
	default:
		return TileFloor
	}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileGrass
}

// IsEncounter returns true if walking on the tile can start a fight.
func (t Tile) IsEncounter() bool {
	return t == TileGrass
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
