// Package entity provides the player and the monsters it fights.
package entity

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/gamedata"
)

// DefaultSpeed is the overworld walking speed in tiles per second.
const DefaultSpeed = 4.0

// Collider reports whether a player-sized box centered at x, y overlaps
// anything solid. Coordinates are in tiles.
type Collider interface {
	Blocks(x, y float64) bool
}

// Player is the hero. It walks the overworld in fractional tile units and
// carries its stats and experience between battles.
type Player struct {
	combat.Stats

	Name   string
	Symbol rune
	Color  tcell.Color
	XP     int

	X, Y  float64 // Tile units; integer values are tile centers
	Speed float64

	// Active gates movement and interaction. It is cleared while a dialog
	// is open or an encounter is starting.
	Active    bool
	Visible   bool
	JustMoved bool
}

// NewPlayer creates a player from a hero definition at the given tile.
func NewPlayer(def *gamedata.HeroDef, x, y int) *Player {
	p := &Player{
		Stats:   combat.NewStats(15, 3, 1),
		Name:    "Hero",
		Symbol:  '@',
		Color:   tcell.ColorYellow,
		X:       float64(x),
		Y:       float64(y),
		Speed:   DefaultSpeed,
		Active:  true,
		Visible: true,
	}
	p.InitFromHeroDef(def)
	return p
}

// InitFromHeroDef loads stats from a hero definition.
func (p *Player) InitFromHeroDef(def *gamedata.HeroDef) {
	if def == nil {
		return
	}
	p.Stats = combat.NewStats(def.HP, def.Attack, def.Defense)
	p.Name = def.Name
	p.Symbol = def.SymbolRune()
	if c, err := gamedata.ParseHexColor(def.Color); err == nil {
		p.Color = c
	}
	if def.Speed > 0 {
		p.Speed = def.Speed
	}
}

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// GainXP adds experience and returns the new total.
func (p *Player) GainXP(amount int) int {
	p.XP += amount
	return p.XP
}

// Position returns the player's position in tiles.
func (p *Player) Position() (float64, float64) {
	return p.X, p.Y
}

// Tile returns the tile the player's center is on.
func (p *Player) Tile() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Move walks the player along dx, dy (each -1, 0 or 1) for dt. Each axis
// is tried separately so the player slides along walls. It returns true if
// the position changed.
func (p *Player) Move(dx, dy int, dt time.Duration, c Collider) bool {
	p.JustMoved = false
	if !p.Active || (dx == 0 && dy == 0) {
		return false
	}

	dist := p.Speed * dt.Seconds()
	prevX, prevY := p.X, p.Y

	if dx != 0 {
		if x := p.X + float64(dx)*dist; !c.Blocks(x, p.Y) {
			p.X = x
		}
	}
	if dy != 0 {
		if y := p.Y + float64(dy)*dist; !c.Blocks(p.X, y) {
			p.Y = y
		}
	}

	p.JustMoved = p.X != prevX || p.Y != prevY
	return p.JustMoved
}

// Show makes the player visible and active again.
func (p *Player) Show() {
	p.Visible = true
	p.Active = true
}

// Hide removes the player from the overworld view.
func (p *Player) Hide() {
	p.Visible = false
}
