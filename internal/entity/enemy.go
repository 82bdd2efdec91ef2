package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/gamedata"
)

// Enemy is a monster spawned for a single battle.
type Enemy struct {
	combat.Stats

	Def    *gamedata.EnemyDef // Definition this enemy was spawned from
	Name   string             // Enemy name (e.g., "Goblin")
	Symbol rune               // Display symbol
}

// NewEnemyFromDef creates a new enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef) *Enemy {
	return &Enemy{
		Stats:  combat.NewStats(def.HP, def.Attack, def.Defense),
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
	}
}

// GetName returns the enemy's name.
func (e *Enemy) GetName() string { return e.Name }

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorPurple
}

// Sprite returns the combat art rows, or the glyph alone when the
// definition has none.
func (e *Enemy) Sprite() []string {
	if e.Def != nil && len(e.Def.Sprite) > 0 {
		return e.Def.Sprite
	}
	return []string{string(e.Symbol)}
}

// ID returns the enemy's type identifier.
func (e *Enemy) ID() string {
	if e.Def != nil {
		return e.Def.ID
	}
	return e.Name
}
