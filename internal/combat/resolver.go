// Package combat provides the turn-based combat system for goblinrun.
package combat

// Combatant is the interface for anything that can be the target of a
// FightEvent. Both the player and enemies implement it.
type Combatant interface {
	// Identity
	GetName() string
	IsAlive() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int

	// Mutations
	TakeDamage(amount int) int // Returns actual damage taken
}

// Hero is the player side of a battle. It collects experience on victory.
type Hero interface {
	Combatant
	GainXP(amount int) int // Returns the new total
}

// Stats holds the combat numbers shared by the player and enemies.
// HP stays within 0..MaxHP; reaching 0 is terminal for the combatant.
type Stats struct {
	MaxHP   int
	HP      int
	Attack  int
	Defense int
}

// NewStats creates stats at full health.
func NewStats(maxHP, attack, defense int) Stats {
	return Stats{
		MaxHP:   maxHP,
		HP:      maxHP,
		Attack:  attack,
		Defense: defense,
	}
}

// IsAlive returns true while HP remains.
func (s *Stats) IsAlive() bool { return s.HP > 0 }

// GetHP returns current HP.
func (s *Stats) GetHP() int { return s.HP }

// GetMaxHP returns maximum HP.
func (s *Stats) GetMaxHP() int { return s.MaxHP }

// GetAttack returns the attack stat.
func (s *Stats) GetAttack() int { return s.Attack }

// GetDefense returns the defense stat.
func (s *Stats) GetDefense() int { return s.Defense }

// TakeDamage reduces HP, never below zero, and returns the HP actually lost.
func (s *Stats) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, s.HP)
	s.HP -= actual
	return actual
}

// Heal restores HP up to MaxHP and returns the amount healed.
func (s *Stats) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, s.MaxHP-s.HP)
	s.HP += actual
	return actual
}

// HealFull restores HP to MaxHP and returns the amount healed.
func (s *Stats) HealFull() int {
	return s.Heal(s.MaxHP - s.HP)
}

// FightEvent is a one-shot damage instruction produced by a turn action.
// It is queued and drained within the same tick.
type FightEvent struct {
	Target Combatant
	Damage int
	Next   Phase // Phase to enter if the target survives
}

// Result is the outcome of resolving one FightEvent.
type Result struct {
	Target   Combatant
	Damage   int // Raw damage carried by the event
	Loss     int // HP actually removed
	HPBefore int
	HPAfter  int
	Defeated bool
}

// Mitigate returns the HP loss for a hit: damage minus defense, never
// negative, so a weak hit deals nothing rather than healing.
func Mitigate(damage, defense int) int {
	return max(0, damage-defense)
}

// Resolve applies a FightEvent to its target.
func Resolve(ev FightEvent) Result {
	before := ev.Target.GetHP()
	loss := ev.Target.TakeDamage(Mitigate(ev.Damage, ev.Target.GetDefense()))
	after := ev.Target.GetHP()

	return Result{
		Target:   ev.Target,
		Damage:   ev.Damage,
		Loss:     loss,
		HPBefore: before,
		HPAfter:  after,
		Defeated: after == 0,
	}
}

// CalculateLoss previews the HP a hit would remove without applying it.
func CalculateLoss(damage int, target Combatant) int {
	return min(Mitigate(damage, target.GetDefense()), target.GetHP())
}
