package gamedata

// HeroDef defines a playable hero loaded from JSON.
type HeroDef struct {
	ID      string  `json:"id"`      // Unique identifier (e.g., "hero")
	Name    string  `json:"name"`    // Display name
	Symbol  string  `json:"symbol"`  // Single character for rendering (e.g., "@")
	Color   string  `json:"color"`   // Hex color code
	HP      int     `json:"hp"`      // Base hit points
	Attack  int     `json:"attack"`  // Base attack power
	Defense int     `json:"defense"` // Base defense value
	Speed   float64 `json:"speed"`   // Overworld speed in tiles per second
}

// SymbolRune returns the symbol as a rune for rendering.
func (h *HeroDef) SymbolRune() rune {
	if len(h.Symbol) == 0 {
		return '?'
	}
	return rune(h.Symbol[0])
}

// HeroesFile represents the structure of heroes.json.
type HeroesFile struct {
	Heroes []HeroDef `json:"heroes"`
}

// LoadHeroes loads hero definitions from the embedded heroes.json file.
func LoadHeroes() ([]HeroDef, error) {
	file, err := Load[HeroesFile]("heroes.json")
	if err != nil {
		return nil, err
	}
	return file.Heroes, nil
}
