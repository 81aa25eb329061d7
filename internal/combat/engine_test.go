package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealDamage(t *testing.T) {
	tests := []struct {
		name     string
		hp       int
		raw      int
		expected int
	}{
		{name: "plain hit", hp: 10, raw: 4, expected: 6},
		{name: "zero raw deals one", hp: 10, raw: 0, expected: 9},
		{name: "negative raw deals one", hp: 10, raw: -5, expected: 9},
		{name: "clamped at zero", hp: 3, raw: 8, expected: 0},
		{name: "already dead", hp: 0, raw: 2, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dealDamage(tt.hp, tt.raw))
		})
	}
}

func TestAttackDamage(t *testing.T) {
	assert.Equal(t, 8, attackDamage(8, 0))
	assert.Equal(t, 1, attackDamage(8, 7))
	assert.Equal(t, 1, attackDamage(7, 7))
	assert.Equal(t, 1, attackDamage(3, 7))
}

func TestScenarioPoisonThenStrike(t *testing.T) {
	s := NewDuel(NewCaster(10, 250), NewBoss(13, 8), Normal)
	assert.Equal(t, "Caster has 10 hit points, 0 shield, 250 mana", s.Caster.String())
	assert.Equal(t, "Boss has 13 hit points", s.Boss.String())

	s, w, err := AdvanceCaster(s, Poison)
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, w)
	assert.Equal(t, Caster{HP: 10, Shield: 0, Mana: 77}, s.Caster)
	assert.Equal(t, 13, s.Boss.HP)
	assert.Equal(t, 6, s.Timers.Remaining(EffectPoison))

	s, w, err = AdvanceBoss(s)
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, w)
	assert.Equal(t, Caster{HP: 2, Shield: 0, Mana: 77}, s.Caster)
	assert.Equal(t, 10, s.Boss.HP)
	assert.Equal(t, 5, s.Timers.Remaining(EffectPoison))

	s, w, err = AdvanceCaster(s, Strike)
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, w)
	assert.Equal(t, Caster{HP: 2, Shield: 0, Mana: 24}, s.Caster)
	assert.Equal(t, 3, s.Boss.HP)

	s, w, err = AdvanceBoss(s)
	require.NoError(t, err)
	assert.Equal(t, WinnerCaster, w)
	assert.Equal(t, CasterWon, s.Status())
	assert.Equal(t, 2, s.Caster.HP, "boss died to poison before attacking")
}

func TestScenarioFiveMoves(t *testing.T) {
	type step struct {
		caster Caster
		bossHP int
		timers EffectTimers
	}
	s := NewDuel(NewCaster(10, 250), NewBoss(14, 8), Normal)

	rounds := []struct {
		move      Move
		afterCast step
		afterBoss step
	}{
		{
			move:      Recharge,
			afterCast: step{Caster{10, 0, 21}, 14, EffectTimers{0, 0, 5}},
			afterBoss: step{Caster{2, 0, 122}, 14, EffectTimers{0, 0, 4}},
		},
		{
			move:      Guard,
			afterCast: step{Caster{2, 7, 110}, 14, EffectTimers{6, 0, 3}},
			afterBoss: step{Caster{1, 7, 211}, 14, EffectTimers{5, 0, 2}},
		},
		{
			move:      Drain,
			afterCast: step{Caster{3, 7, 239}, 12, EffectTimers{4, 0, 1}},
			afterBoss: step{Caster{2, 7, 340}, 12, EffectTimers{3, 0, 0}},
		},
		{
			move:      Poison,
			afterCast: step{Caster{2, 7, 167}, 12, EffectTimers{2, 6, 0}},
			afterBoss: step{Caster{1, 7, 167}, 9, EffectTimers{1, 5, 0}},
		},
	}

	for _, r := range rounds {
		var w Winner
		var err error
		s, w, err = AdvanceCaster(s, r.move)
		require.NoError(t, err, r.move.String())
		require.Equal(t, WinnerNone, w)
		assert.Equal(t, r.afterCast.caster, s.Caster, "after %s", r.move)
		assert.Equal(t, r.afterCast.bossHP, s.Boss.HP, "after %s", r.move)
		assert.Equal(t, r.afterCast.timers, s.Timers, "after %s", r.move)

		s, w, err = AdvanceBoss(s)
		require.NoError(t, err)
		require.Equal(t, WinnerNone, w)
		assert.Equal(t, r.afterBoss.caster, s.Caster, "boss after %s", r.move)
		assert.Equal(t, r.afterBoss.bossHP, s.Boss.HP, "boss after %s", r.move)
		assert.Equal(t, r.afterBoss.timers, s.Timers, "boss after %s", r.move)
	}

	s, w, err := AdvanceCaster(s, Strike)
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, w)
	assert.Equal(t, Caster{HP: 1, Shield: 0, Mana: 114}, s.Caster)
	assert.Equal(t, 2, s.Boss.HP)
	assert.Equal(t, EffectTimers{0, 4, 0}, s.Timers)
	assert.Equal(t, "Caster has 1 hit point, 0 shield, 114 mana", s.Caster.String())

	s, w, err = AdvanceBoss(s)
	require.NoError(t, err)
	assert.Equal(t, WinnerCaster, w)
	assert.Equal(t, 0, s.Boss.HP)
}

func TestEffectTimersCountDown(t *testing.T) {
	for _, e := range Effects {
		t.Run(e.String(), func(t *testing.T) {
			s := NewDuel(NewCaster(1000, 0), NewBoss(1000, 0), Normal)
			s.Timers[e] = uint8(e.Duration())
			effectSpecs[e].Activate(&s)

			for n := 1; n <= e.Duration()+2; n++ {
				var err error
				s, _, err = AdvanceBoss(s)
				require.NoError(t, err)
				want := e.Duration() - n
				if want < 0 {
					want = 0
				}
				assert.Equal(t, want, s.Timers.Remaining(e), "tick %d", n)
				if e == EffectShield {
					if want > 0 {
						assert.Equal(t, shieldBonus, s.Caster.Shield, "tick %d", n)
					} else {
						assert.Equal(t, 0, s.Caster.Shield, "tick %d", n)
					}
				}
			}
		})
	}
}

func TestRecastWithTimerOfOne(t *testing.T) {
	base := NewDuel(NewCaster(50, 500), NewBoss(50, 8), Normal)
	for _, m := range []Move{Guard, Poison, Recharge} {
		e, ok := m.Effect()
		require.True(t, ok)

		t.Run(m.String()+" timer 1 allowed", func(t *testing.T) {
			s := base
			s.Timers[e] = 1
			if e == EffectShield {
				s.Caster.Shield = shieldBonus
			}
			next, _, err := AdvanceCaster(s, m)
			require.NoError(t, err)
			assert.Equal(t, e.Duration(), next.Timers.Remaining(e))
			if e == EffectShield {
				assert.Equal(t, shieldBonus, next.Caster.Shield, "expire then reactivate keeps one bonus")
			}
		})

		t.Run(m.String()+" timer 2 rejected", func(t *testing.T) {
			s := base
			s.Timers[e] = 2
			next, _, err := AdvanceCaster(s, m)
			assert.ErrorIs(t, err, ErrEffectActive)
			assert.Equal(t, s, next)
		})
	}
}

func TestAdvanceCasterRejections(t *testing.T) {
	t.Run("insufficient mana", func(t *testing.T) {
		s := NewDuel(NewCaster(10, 52), NewBoss(13, 8), Normal)
		_, _, err := AdvanceCaster(s, Strike)
		assert.ErrorIs(t, err, ErrInsufficientMana)
	})

	t.Run("mana from recharge tick does not count", func(t *testing.T) {
		s := NewDuel(NewCaster(10, 50), NewBoss(13, 8), Normal)
		s.Timers[EffectRecharge] = 3
		_, _, err := AdvanceCaster(s, Strike)
		assert.ErrorIs(t, err, ErrInsufficientMana)
	})

	t.Run("finished duel", func(t *testing.T) {
		s := NewDuel(NewCaster(10, 500), NewBoss(0, 8), Normal)
		_, w, err := AdvanceCaster(s, Strike)
		assert.ErrorIs(t, err, ErrGameFinished)
		assert.Equal(t, WinnerCaster, w)

		_, _, err = AdvanceBoss(s)
		assert.ErrorIs(t, err, ErrGameFinished)
	})

	t.Run("boss won is terminal", func(t *testing.T) {
		s := NewDuel(NewCaster(0, 500), NewBoss(10, 8), Normal)
		_, w, err := AdvanceCaster(s, Strike)
		assert.ErrorIs(t, err, ErrGameFinished)
		assert.Equal(t, WinnerBoss, w)
	})
}

func TestHardModeDamageBeforeLegality(t *testing.T) {
	s := NewDuel(NewCaster(1, 0), NewBoss(10, 8), Hard)
	next, w, err := AdvanceCaster(s, Recharge)
	require.NoError(t, err, "the loss is reported before the mana check")
	assert.Equal(t, WinnerBoss, w)
	assert.Equal(t, 0, next.Caster.HP)
	assert.Equal(t, BossWon, next.Status())

	s = NewDuel(NewCaster(5, 500), NewBoss(10, 8), Hard)
	next, w, err = AdvanceCaster(s, Strike)
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, w)
	assert.Equal(t, 4, next.Caster.HP)
	assert.Equal(t, 6, next.Boss.HP)
}

func TestPoisonTickWinsBeforeCast(t *testing.T) {
	s := NewDuel(NewCaster(10, 500), NewBoss(3, 8), Normal)
	s.Timers[EffectPoison] = 2

	next, w, err := AdvanceCaster(s, Strike)
	require.NoError(t, err)
	assert.Equal(t, WinnerCaster, w)
	assert.Equal(t, 500, next.Caster.Mana, "no cast once the boss is dead")
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	s := NewDuel(NewCaster(10, 500), NewBoss(14, 8), Hard)
	s.Timers[EffectShield] = 3
	s.Caster.Shield = shieldBonus
	before := s

	_, _, err := PlayRound(s, Poison)
	require.NoError(t, err)
	assert.Equal(t, before, s)
}

func TestPlayRoundStopsOnCasterWin(t *testing.T) {
	s := NewDuel(NewCaster(10, 500), NewBoss(4, 50), Normal)
	next, w, err := PlayRound(s, Strike)
	require.NoError(t, err)
	assert.Equal(t, WinnerCaster, w)
	assert.Equal(t, 10, next.Caster.HP)
}

func TestDuelStateLess(t *testing.T) {
	a := NewDuel(NewCaster(10, 250), NewBoss(13, 8), Normal)
	b := a
	assert.False(t, a.Less(b))
	assert.False(t, b.Less(a))

	b.Timers[EffectRecharge] = 1
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	c := a
	c.Difficulty = Hard
	assert.True(t, a.Less(c))
}
