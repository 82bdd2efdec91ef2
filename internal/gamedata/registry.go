package gamedata

import (
	"errors"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	// Pick a random value in the total weight range
	roll := rng.Intn(r.totalWeight)

	// Find which enemy this roll corresponds to
	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// HeroRegistry
// =============================================================================

// HeroRegistry holds loaded hero definitions keyed by ID.
type HeroRegistry struct {
	heroes map[string]*HeroDef
}

// NewHeroRegistry creates a registry from loaded hero definitions.
func NewHeroRegistry(heroes []HeroDef) *HeroRegistry {
	registry := &HeroRegistry{heroes: make(map[string]*HeroDef, len(heroes))}
	for i := range heroes {
		registry.heroes[heroes[i].ID] = &heroes[i]
	}
	return registry
}

// LoadHeroRegistry loads and creates a registry from the embedded heroes.json.
func LoadHeroRegistry() (*HeroRegistry, error) {
	heroes, err := LoadHeroes()
	if err != nil {
		return nil, err
	}
	if len(heroes) == 0 {
		return nil, errors.New("no heroes loaded from heroes.json")
	}
	return NewHeroRegistry(heroes), nil
}

// GetByID returns the hero definition with the given ID, or nil if not found.
func (r *HeroRegistry) GetByID(id string) *HeroDef {
	return r.heroes[id]
}
