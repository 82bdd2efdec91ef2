package combat

// Step is the coarse combat phase.
type Step int

const (
	// StepPlayerTurn - waiting for the player to pick Fight or Run
	StepPlayerTurn Step = iota
	// StepPlayerAttack - the enemy blinks while the player's hit plays out
	StepPlayerAttack
	// StepEnemyTurn - the enemy picks its action
	StepEnemyTurn
	// StepEnemyAttack - the screen shakes while the enemy's hit plays out
	StepEnemyAttack
	// StepVictory - a combatant reached 0 HP; stays until combat is left
	StepVictory
)

// String returns a human-readable step name.
func (s Step) String() string {
	switch s {
	case StepPlayerTurn:
		return "player_turn"
	case StepPlayerAttack:
		return "player_attack"
	case StepEnemyTurn:
		return "enemy_turn"
	case StepEnemyAttack:
		return "enemy_attack"
	case StepVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Phase is the active combat phase. Decided only matters for the enemy
// turn: false means the enemy has not acted yet, true means its FightEvent
// was already sent and is awaiting resolution.
type Phase struct {
	Step    Step
	Decided bool
}

var (
	PhasePlayerTurn   = Phase{Step: StepPlayerTurn}
	PhasePlayerAttack = Phase{Step: StepPlayerAttack}
	PhaseEnemyAttack  = Phase{Step: StepEnemyAttack}
	PhaseVictory      = Phase{Step: StepVictory}
)

// PhaseEnemyTurn returns the enemy turn phase with the given decided flag.
func PhaseEnemyTurn(decided bool) Phase {
	return Phase{Step: StepEnemyTurn, Decided: decided}
}

// String returns a human-readable phase name.
func (p Phase) String() string {
	if p.Step == StepEnemyTurn && p.Decided {
		return "enemy_turn(decided)"
	}
	return p.Step.String()
}

// IsAttackAnimation reports whether attack effects run in this phase.
func (p Phase) IsAttackAnimation() bool {
	return p.Step == StepPlayerAttack || p.Step == StepEnemyAttack
}
