package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/goblinrun/internal/combat"
	"github.com/samdwyer/goblinrun/internal/entity"
	"github.com/samdwyer/goblinrun/internal/gamedata"
	"github.com/samdwyer/goblinrun/internal/world"
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	s, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sim.SetSize(80, 24)
	t.Cleanup(s.Close)
	return NewRenderer(s), sim
}

// row returns the text of screen row y.
func row(r *Renderer, y int) string {
	w, _ := r.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _ := r.screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(r *Renderer) string {
	_, h := r.screen.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(row(r, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func testWorld(t *testing.T) *world.Map {
	t.Helper()
	m, err := world.FromDef(&gamedata.MapDef{
		Spawn: gamedata.Point{X: 2, Y: 2},
		Tiles: []string{
			"#######",
			"#.....#",
			"#..~..#",
			"#...@.#",
			"#######",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDrawMenu(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Begin()
	r.DrawMenu(true)

	text := screenText(r)
	for _, want := range []string{"G O B L I N", "Start"} {
		if !strings.Contains(text, want) {
			t.Errorf("menu is missing %q", want)
		}
	}
}

func TestMenuButtonDisabledStyle(t *testing.T) {
	r, _ := newTestRenderer(t)

	find := func() tcell.Style {
		_, h := r.screen.Size()
		for y := 0; y < h; y++ {
			if i := strings.Index(row(r, y), "Start"); i >= 0 {
				_, style := r.screen.GetContent(i, y)
				return style
			}
		}
		t.Fatal("Start button not drawn")
		return tcell.StyleDefault
	}

	r.Begin()
	r.DrawMenu(true)
	_, enabledBG, _ := find().Decompose()

	r.Begin()
	r.DrawMenu(false)
	_, disabledBG, _ := find().Decompose()

	if enabledBG == disabledBG {
		t.Error("disabled Start button should look different")
	}
}

func TestDrawOverworldCentersPlayer(t *testing.T) {
	r, _ := newTestRenderer(t)
	m := testWorld(t)
	p := entity.NewPlayer(nil, 2, 2)
	p.Symbol = '&'

	r.Begin()
	r.DrawOverworld(m, p)

	w, h := r.screen.Size()
	ch, _ := r.screen.GetContent(w/2, (h-statusRows)/2)
	if ch != '&' {
		t.Errorf("center cell = %q, want player", ch)
	}

	text := screenText(r)
	if !strings.Contains(text, "#") || !strings.Contains(text, "+") || !strings.Contains(text, `"`) {
		t.Error("overworld should show walls, the healer and grass")
	}
}

func TestHiddenPlayerNotDrawn(t *testing.T) {
	r, _ := newTestRenderer(t)
	p := entity.NewPlayer(nil, 2, 2)
	p.Symbol = '&'
	p.Hide()

	r.Begin()
	r.DrawOverworld(testWorld(t), p)
	if strings.Contains(screenText(r), "&") {
		t.Error("hidden player should not be drawn")
	}
}

func TestDrawDialog(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Begin()
	r.DrawDialog("Heal, heal, HEAL!")

	text := screenText(r)
	if !strings.Contains(text, "Heal, heal, HEAL!") || !strings.Contains(text, "Press SPACE to continue") {
		t.Error("dialog text missing")
	}
}

func TestDrawCombat(t *testing.T) {
	r, _ := newTestRenderer(t)

	player := entity.NewPlayer(nil, 0, 0)
	enemy := entity.NewEnemyFromDef(&gamedata.EnemyDef{ID: "goblin", Name: "Goblin", Glyph: "g", Color: "#6ED57E", HP: 7, Attack: 2, Defense: 1, Sprite: []string{"(o_o)"}})
	b := combat.NewBattle(context.Background(), player, enemy, nil)

	r.Begin()
	r.DrawCombat(b, enemy)
	text := screenText(r)
	for _, want := range []string{"Goblin", "(o_o)", "Enemy HP: 7", "Player HP: 15", "Fight", "Run"} {
		if !strings.Contains(text, want) {
			t.Errorf("combat screen is missing %q", want)
		}
	}

	// Mid blink the sprite is hidden.
	b.Fight()
	b.Update(context.Background(), 30*time.Millisecond)
	r.Begin()
	r.DrawCombat(b, enemy)
	text = screenText(r)
	if strings.Contains(text, "(o_o)") {
		t.Error("sprite should blink out during the player's attack")
	}
	if !strings.Contains(text, "Enemy HP: 5") {
		t.Error("enemy HP should update after the hit")
	}
}

func TestDrawCombatWhileLeaving(t *testing.T) {
	r, _ := newTestRenderer(t)

	player := entity.NewPlayer(nil, 0, 0)
	enemy := entity.NewEnemyFromDef(&gamedata.EnemyDef{ID: "goblin", Name: "Goblin", Glyph: "g", Color: "#6ED57E", HP: 7, Attack: 2, Defense: 1})
	b := combat.NewBattle(context.Background(), player, enemy, nil)

	if !b.Run() {
		t.Fatal("Run() should be accepted on the player's turn")
	}
	r.Begin()
	r.DrawCombat(b, enemy)
	text := screenText(r)

	if !strings.Contains(text, "Leaving the battle...") {
		t.Error("combat screen should say the battle is ending")
	}
	if strings.Contains(text, "[F] Fight") || strings.Contains(text, "[R] Run") {
		t.Error("buttons should be hidden once the exit is requested")
	}
}

func TestDrawStatus(t *testing.T) {
	r, _ := newTestRenderer(t)
	p := entity.NewPlayer(nil, 0, 0)
	p.XP = 20

	r.Begin()
	r.DrawStatus(p, 0.5)

	_, h := r.screen.Size()
	line := row(r, h-1)
	for _, want := range []string{"HP 15/15", "XP 20", "Vol 50%"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q is missing %q", line, want)
		}
	}
}

func TestApplyFade(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Begin()
	r.drawText(0, 0, "x", tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 255)).Background(tcell.NewRGBColor(0, 0, 0)))

	r.ApplyFade(0)
	_, style := r.screen.GetContent(0, 0)
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(0, 0, 0) {
		t.Error("zero alpha should leave cells untouched")
	}

	r.ApplyFade(1)
	ch, style := r.screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	if fg != gamedata.ColorFade || bg != gamedata.ColorFade {
		t.Errorf("full fade colors = %v/%v, want fade color", fg, bg)
	}
	if ch != 'x' {
		t.Errorf("fade should keep the glyph, got %q", ch)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{4, 2, 2}, {5, 2, 2}, {-1, 2, -1}, {-2, 2, -1}, {-3, 2, -2}, {0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
