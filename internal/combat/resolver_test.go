package combat

import (
	"testing"
)

// mockCombatant is a test implementation of the Hero interface.
type mockCombatant struct {
	Stats
	name string
	xp   int
}

func newMockCombatant(name string, hp, attack, defense int) *mockCombatant {
	return &mockCombatant{
		Stats: NewStats(hp, attack, defense),
		name:  name,
	}
}

func (m *mockCombatant) GetName() string { return m.name }

func (m *mockCombatant) GainXP(amount int) int {
	m.xp += amount
	return m.xp
}

func TestMitigate(t *testing.T) {
	tests := []struct {
		name     string
		damage   int
		defense  int
		expected int
	}{
		{"damage above defense", 3, 1, 2},
		{"damage equals defense", 2, 2, 0},
		{"defense exceeds damage", 1, 5, 0},
		{"zero damage", 0, 0, 0},
		{"zero defense", 4, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mitigate(tt.damage, tt.defense); got != tt.expected {
				t.Errorf("Mitigate(%d, %d) = %d, want %d", tt.damage, tt.defense, got, tt.expected)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		hp           int
		defense      int
		damage       int
		wantLoss     int
		wantHP       int
		wantDefeated bool
	}{
		{"normal hit", 7, 1, 3, 2, 5, false},
		{"blocked hit", 7, 10, 3, 0, 7, false},
		{"lethal hit", 1, 1, 3, 1, 0, true},
		{"overkill clamps at zero", 2, 0, 50, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newMockCombatant("Target", tt.hp, 0, tt.defense)
			res := Resolve(FightEvent{Target: target, Damage: tt.damage, Next: PhasePlayerAttack})

			if res.Loss != tt.wantLoss {
				t.Errorf("Loss = %d, want %d", res.Loss, tt.wantLoss)
			}
			if target.GetHP() != tt.wantHP {
				t.Errorf("HP = %d, want %d", target.GetHP(), tt.wantHP)
			}
			if res.HPBefore != tt.hp || res.HPAfter != tt.wantHP {
				t.Errorf("HP before/after = %d/%d, want %d/%d", res.HPBefore, res.HPAfter, tt.hp, tt.wantHP)
			}
			if res.Defeated != tt.wantDefeated {
				t.Errorf("Defeated = %v, want %v", res.Defeated, tt.wantDefeated)
			}
		})
	}
}

func TestCalculateLossDoesNotMutate(t *testing.T) {
	target := newMockCombatant("Goblin", 7, 2, 1)
	if got := CalculateLoss(3, target); got != 2 {
		t.Errorf("CalculateLoss() = %d, want 2", got)
	}
	if target.GetHP() != 7 {
		t.Errorf("HP = %d, want 7 after preview", target.GetHP())
	}
}

func TestStatsHeal(t *testing.T) {
	s := NewStats(15, 3, 1)
	s.TakeDamage(10)

	if healed := s.Heal(4); healed != 4 || s.HP != 9 {
		t.Errorf("Heal(4) = %d, HP %d; want 4, 9", healed, s.HP)
	}
	if healed := s.HealFull(); healed != 6 || s.HP != 15 {
		t.Errorf("HealFull() = %d, HP %d; want 6, 15", healed, s.HP)
	}
	if healed := s.Heal(5); healed != 0 {
		t.Errorf("Heal at full = %d, want 0", healed)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhasePlayerTurn, "player_turn"},
		{PhasePlayerAttack, "player_attack"},
		{PhaseEnemyTurn(false), "enemy_turn"},
		{PhaseEnemyTurn(true), "enemy_turn(decided)"},
		{PhaseEnemyAttack, "enemy_attack"},
		{PhaseVictory, "victory"},
		{Phase{Step: 99}, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase.String() = %q, want %q", got, tt.expected)
		}
	}
}
