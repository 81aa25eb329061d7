package combat

import (
	"fmt"

	"duelsim/internal/config"
)

// DuelFromConfig builds the initial state for one preset against the boss.
func DuelFromConfig(p config.PresetDef, b config.BossStats) (DuelState, error) {
	d, err := ParseDifficulty(p.Difficulty)
	if err != nil {
		return DuelState{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return NewDuel(NewCaster(p.HP, p.Mana), NewBoss(b.HitPoints, b.Damage), d), nil
}
