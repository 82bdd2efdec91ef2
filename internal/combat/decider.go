package combat

// Decider picks the damage an enemy deals on its turn.
type Decider interface {
	Decide(enemy, player Combatant) int
}

// AttackDecider always attacks with the enemy's attack stat.
type AttackDecider struct{}

// Decide returns the enemy's attack stat.
func (AttackDecider) Decide(enemy, _ Combatant) int {
	return enemy.GetAttack()
}
