package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/entity"
	"github.com/samdwyer/goblinrun/internal/gamedata"
	"github.com/samdwyer/goblinrun/internal/world"
)

const (
	// tileWidth is the number of columns per map tile. Terminal cells are
	// roughly twice as tall as they are wide.
	tileWidth = 2

	// shakeScale converts combat shake into columns.
	shakeScale = 4

	statusRows = 1
)

var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleDim      = styleDefault.Foreground(tcell.ColorGray)
	styleTitle    = styleDefault.Foreground(gamedata.ColorButtonHover).Bold(true)
	styleDialog   = tcell.StyleDefault.Background(gamedata.ColorFade).Foreground(tcell.ColorWhite)
	styleDisabled = tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Background(gamedata.ColorFloor).Foreground(tcell.ColorWhite)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.screen.Clear()
}

// End flushes the frame to the terminal.
func (r *Renderer) End() {
	r.screen.Show()
}

// DrawMenu draws the title screen with its Start button.
func (r *Renderer) DrawMenu(startEnabled bool) {
	w, h := r.screen.Size()
	cy := h / 3

	r.drawCentered(cy, "G O B L I N   R U N", styleTitle)
	r.drawCentered(cy+2, "a very small adventure", styleDim)

	r.drawButton(w/2-5, cy+6, "  Start  ", startEnabled, true)
	r.drawCentered(cy+9, "ENTER to start    ESC to quit", styleDim)
}

// DrawOverworld draws the map around the player.
func (r *Renderer) DrawOverworld(m *world.Map, p *entity.Player) {
	w, h := r.screen.Size()
	viewH := h - statusRows

	px := int(math.Round(p.X * tileWidth))
	py := int(math.Round(p.Y))
	camX := px - w/2
	camY := py - viewH/2

	for sy := 0; sy < viewH; sy++ {
		ty := camY + sy
		for sx := 0; sx < w; sx++ {
			col := camX + sx
			tx := floorDiv(col, tileWidth)
			if tx < 0 || tx >= m.Width || ty < 0 || ty >= m.Height {
				continue
			}
			glyph, style := tileLook(m.GetTile(tx, ty), col-tx*tileWidth)
			r.screen.SetContent(sx, sy, glyph, style)
		}
	}

	if p.Visible {
		r.screen.SetContent(px-camX, py-camY, p.Symbol,
			tcell.StyleDefault.Background(gamedata.ColorFloor).Foreground(p.Color).Bold(true))
	}
}

// tileLook returns the glyph and style for one column of a tile.
func tileLook(t world.Tile, sub int) (rune, tcell.Style) {
	floor := tcell.StyleDefault.Background(gamedata.ColorFloor)
	switch t {
	case world.TileWall:
		return '#', tcell.StyleDefault.Background(gamedata.ColorWall).Foreground(tcell.ColorDarkGray)
	case world.TileGrass:
		if sub == 0 {
			return '"', floor.Foreground(gamedata.ColorGrass)
		}
		return ',', floor.Foreground(gamedata.ColorGrass)
	case world.TileHealer:
		if sub == 0 {
			return '+', floor.Foreground(gamedata.ColorHealer).Bold(true)
		}
		return ' ', floor
	default:
		if sub == 0 {
			return '.', floor.Foreground(tcell.ColorGray)
		}
		return ' ', floor
	}
}

// DrawDialog draws a speech box over the bottom of the view.
func (r *Renderer) DrawDialog(text string) {
	w, h := r.screen.Size()
	boxW := w * 8 / 10
	boxH := 5
	x0 := (w - boxW) / 2
	y0 := h - statusRows - boxH - 1

	r.fill(x0, y0, boxW, boxH, styleDialog)
	r.drawText(x0+2, y0+1, text, styleDialog.Bold(true))
	hint := "Press SPACE to continue"
	r.drawText(x0+boxW-len(hint)-2, y0+boxH-2, hint, styleDialog)
}

// DrawCombat draws the battle screen. The whole screen is offset by the
// current shake. Once the exit fade is under way the buttons are replaced
// by a notice.
func (r *Renderer) DrawCombat(b *combat.Battle, enemy *entity.Enemy) {
	w, h := r.screen.Size()
	shift := int(math.Round(b.Shake() * shakeScale))

	sprite := enemy.Sprite()
	spriteW := 0
	for _, row := range sprite {
		spriteW = max(spriteW, len(row))
	}
	sx := (w-spriteW)/2 + shift
	sy := max(1, h/4-len(sprite)/2)

	r.drawText(sx, sy-1, enemy.GetName(), styleDefault.Bold(true))
	if b.EnemyVisible() {
		style := styleDefault.Foreground(enemy.Color())
		for i, row := range sprite {
			r.drawText(sx, sy+i, row, style)
		}
	}

	boxY := h - statusRows - 7
	r.fill(2+shift, boxY, w-4, 6, styleDialog)
	r.drawText(4+shift, boxY+1, fmt.Sprintf("Enemy HP: %d", b.Enemy.GetHP()), styleDialog)
	r.drawText(4+shift, boxY+2, fmt.Sprintf("Player HP: %d", b.Player.GetHP()), styleDialog)
	r.drawText(4+shift, boxY+4, b.LastMessage, styleDialog.Italic(true))

	if b.Exiting() {
		r.drawText(w-30+shift, boxY+1, "Leaving the battle...", styleDialog.Italic(true))
		return
	}
	enabled := b.InputEnabled()
	r.drawButton(w-30+shift, boxY+1, " [F] Fight ", enabled, false)
	r.drawButton(w-16+shift, boxY+1, " [R] Run ", enabled, false)
}

// DrawStatus draws the bottom status line.
func (r *Renderer) DrawStatus(p *entity.Player, volume float64) {
	w, h := r.screen.Size()
	y := h - 1
	r.fill(0, y, w, 1, styleStatus)

	line := fmt.Sprintf(" HP %d/%d   XP %d   Vol %d%%", p.GetHP(), p.GetMaxHP(), p.XP, int(math.Round(volume*100)))
	r.drawText(0, y, line, styleStatus)

	keys := "+/- volume  ESC quit "
	r.drawText(w-len(keys), y, keys, styleStatus.Foreground(tcell.ColorGray))
}

// ApplyFade tints every cell toward the fade color by alpha.
func (r *Renderer) ApplyFade(alpha float64) {
	if alpha <= 0 {
		return
	}
	w, h := r.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch, style := r.screen.GetContent(x, y)
			fg, bg, _ := style.Decompose()
			style = style.
				Foreground(gamedata.Blend(fg, gamedata.ColorFade, alpha)).
				Background(gamedata.Blend(bg, gamedata.ColorFade, alpha))
			r.screen.SetContent(x, y, ch, style)
		}
	}
}

// drawButton draws a label on a colored background. Disabled buttons are
// grayed out.
func (r *Renderer) drawButton(x, y int, label string, enabled, hovered bool) {
	style := styleDisabled
	switch {
	case enabled && hovered:
		style = tcell.StyleDefault.Background(gamedata.ColorButtonHover).Foreground(tcell.ColorBlack)
	case enabled:
		style = tcell.StyleDefault.Background(gamedata.ColorButton).Foreground(tcell.ColorWhite).Bold(true)
	}
	r.drawText(x, y, label, style)
}

func (r *Renderer) drawCentered(y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	r.drawText((w-len([]rune(s)))/2, y, s, style)
}

// drawText writes s starting at x, y and returns the column after it.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	return x
}

func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r.screen.SetContent(x+dx, y+dy, ' ', style)
		}
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
