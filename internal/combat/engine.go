package combat

import "errors"

var (
	ErrGameFinished     = errors.New("duel already finished")
	ErrInsufficientMana = errors.New("not enough mana")
	ErrEffectActive     = errors.New("effect already active")
)

// turn carries a private copy of the state through one half-turn.
type turn struct {
	s    DuelState
	emit func(typ string, payload map[string]any)
}

func newTurn(s DuelState, emit func(string, map[string]any)) *turn {
	if emit == nil {
		emit = func(string, map[string]any) {}
	}
	return &turn{s: s, emit: emit}
}

// AdvanceCaster applies the caster's half-turn. The input state is never
// modified. Illegal moves return one of the sentinel errors.
func AdvanceCaster(s DuelState, m Move) (DuelState, Winner, error) {
	return advanceCaster(s, m, nil)
}

// AdvanceBoss applies the boss's half-turn.
func AdvanceBoss(s DuelState) (DuelState, Winner, error) {
	return advanceBoss(s, nil)
}

// PlayRound is one caster half-turn followed by the boss's, unless the
// caster's half-turn already decided the duel.
func PlayRound(s DuelState, m Move) (DuelState, Winner, error) {
	return playRound(s, m, nil)
}

func playRound(s DuelState, m Move, emit func(string, map[string]any)) (DuelState, Winner, error) {
	next, w, err := advanceCaster(s, m, emit)
	if err != nil || w != WinnerNone {
		return next, w, err
	}
	return advanceBoss(next, emit)
}

func advanceCaster(s DuelState, m Move, emit func(string, map[string]any)) (DuelState, Winner, error) {
	if s.Finished() {
		return s, s.Winner(), ErrGameFinished
	}
	t := newTurn(s, emit)

	if t.s.Difficulty == Hard {
		t.s.Caster.HP = dealDamage(t.s.Caster.HP, 1)
		t.emit("HardModeDamage", map[string]any{"hp": t.s.Caster.HP})
		if w := t.s.Winner(); w != WinnerNone {
			return t.finish(w)
		}
	}

	if err := canCast(t.s, m); err != nil {
		return s, WinnerNone, err
	}

	if w := t.tickEffects(); w != WinnerNone {
		return t.finish(w)
	}

	t.cast(m)
	return t.finish(t.s.Winner())
}

func advanceBoss(s DuelState, emit func(string, map[string]any)) (DuelState, Winner, error) {
	if s.Finished() {
		return s, s.Winner(), ErrGameFinished
	}
	t := newTurn(s, emit)

	if w := t.tickEffects(); w != WinnerNone {
		return t.finish(w)
	}

	dmg := attackDamage(t.s.Boss.Attack, t.s.Caster.Shield)
	t.s.Caster.HP = dealDamage(t.s.Caster.HP, dmg)
	t.emit("Attack", map[string]any{"dmg": dmg, "shield": t.s.Caster.Shield, "hp": t.s.Caster.HP})
	return t.finish(t.s.Winner())
}

func canCast(s DuelState, m Move) error {
	if s.Caster.Mana < m.Cost() {
		return ErrInsufficientMana
	}
	// a timer of 1 runs out during this half-turn's own tick
	if e, ok := m.Effect(); ok && s.Timers[e] > 1 {
		return ErrEffectActive
	}
	return nil
}

func (t *turn) tickEffects() Winner {
	for _, e := range Effects {
		if t.s.Timers[e] == 0 {
			continue
		}
		spec := effectSpecs[e]
		t.s.Timers[e]--
		spec.Tick(&t.s)
		t.emit("EffectTick", map[string]any{"effect": spec.Name, "timer": int(t.s.Timers[e])})
		if t.s.Timers[e] == 0 {
			spec.Expire(&t.s)
			t.emit("EffectExpire", map[string]any{"effect": spec.Name})
		}
		if w := t.s.Winner(); w != WinnerNone {
			return w
		}
	}
	return WinnerNone
}

func (t *turn) cast(m Move) {
	sp := moveSpecs[m]
	t.s.Caster.Mana -= sp.Cost
	if sp.Damage > 0 {
		t.s.Boss.HP = dealDamage(t.s.Boss.HP, sp.Damage)
	}
	t.s.Caster.HP += sp.Heal
	if sp.HasEffect {
		t.s.Timers[sp.Effect] = effectSpecs[sp.Effect].Duration
		effectSpecs[sp.Effect].Activate(&t.s)
	}
	t.emit("Cast", map[string]any{
		"move": sp.Name, "cost": sp.Cost, "mana": t.s.Caster.Mana, "boss_hp": t.s.Boss.HP,
	})
}

func (t *turn) finish(w Winner) (DuelState, Winner, error) {
	if w != WinnerNone {
		t.emit("Finish", map[string]any{"winner": w.String()})
	}
	return t.s, w, nil
}
