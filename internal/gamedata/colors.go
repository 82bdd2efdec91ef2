package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette used across screens.
var (
	ColorFade         = MustParseHexColor("#432E3B")
	ColorButton       = MustParseHexColor("#D5543B")
	ColorButtonHover  = MustParseHexColor("#EAB644")
	ColorButtonActive = MustParseHexColor("#6ED57E")
	ColorGrass        = MustParseHexColor("#3E8948")
	ColorWall         = MustParseHexColor("#5A6988")
	ColorFloor        = MustParseHexColor("#262B44")
	ColorHealer       = MustParseHexColor("#F6757A")
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	// Remove leading # if present
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	// Parse RGB components
	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// Blend mixes from toward to by t in [0, 1].
func Blend(from, to tcell.Color, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	if t == 0 {
		return from
	}
	if from == tcell.ColorDefault || !from.Valid() {
		from = tcell.ColorBlack
	}
	r1, g1, b1 := from.RGB()
	r2, g2, b2 := to.RGB()
	mix := func(a, b int32) int32 {
		return a + int32(float64(b-a)*t+0.5*sign(b-a))
	}
	return tcell.NewRGBColor(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

func sign(v int32) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
