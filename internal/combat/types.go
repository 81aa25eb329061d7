package combat

import (
	"fmt"

	"duelsim/internal/config"
)

// Event is one entry of a replay log. Round counts full rounds from 1.
type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Caster struct {
	HP     int `json:"hp"`
	Shield int `json:"shield"`
	Mana   int `json:"mana"`
}

func NewCaster(hp, mana int) Caster {
	return Caster{HP: hp, Mana: mana}
}

func (c Caster) String() string {
	return fmt.Sprintf("Caster has %d hit %s, %d shield, %d mana", c.HP, pointWord(c.HP), c.Shield, c.Mana)
}

type Boss struct {
	HP     int `json:"hp"`
	Attack int `json:"attack"`
}

func NewBoss(hp, attack int) Boss {
	return Boss{HP: hp, Attack: attack}
}

func (b Boss) String() string {
	return fmt.Sprintf("Boss has %d hit %s", b.HP, pointWord(b.HP))
}

func pointWord(n int) string {
	if n == 1 {
		return "point"
	}
	return "points"
}

type Difficulty uint8

const (
	Normal Difficulty = iota
	Hard
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch config.NormalizeName(s) {
	case "", "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) String() string {
	if d == Hard {
		return "hard"
	}
	return "normal"
}

type Winner uint8

const (
	WinnerNone Winner = iota
	WinnerCaster
	WinnerBoss
)

func (w Winner) String() string {
	switch w {
	case WinnerCaster:
		return "caster"
	case WinnerBoss:
		return "boss"
	}
	return "none"
}

type Status uint8

const (
	InProgress Status = iota
	CasterWon
	BossWon
)

func (s Status) String() string {
	switch s {
	case CasterWon:
		return "caster_won"
	case BossWon:
		return "boss_won"
	}
	return "in_progress"
}

// DuelState is a plain comparable value. Two equal states have the same
// future, so the search keys its cost map on it directly.
type DuelState struct {
	Caster     Caster
	Boss       Boss
	Timers     EffectTimers
	Difficulty Difficulty
}

func NewDuel(caster Caster, boss Boss, difficulty Difficulty) DuelState {
	caster.Shield = 0
	return DuelState{Caster: caster, Boss: boss, Difficulty: difficulty}
}

// Winner checks the boss first: damage that kills the boss ends the duel
// before any retaliation counts.
func (s DuelState) Winner() Winner {
	switch {
	case s.Boss.HP == 0:
		return WinnerCaster
	case s.Caster.HP == 0:
		return WinnerBoss
	}
	return WinnerNone
}

func (s DuelState) Status() Status {
	switch s.Winner() {
	case WinnerCaster:
		return CasterWon
	case WinnerBoss:
		return BossWon
	}
	return InProgress
}

func (s DuelState) Finished() bool { return s.Winner() != WinnerNone }

// Less is a total order over every field of the state.
func (s DuelState) Less(o DuelState) bool {
	a, b := s.key(), o.key()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (s DuelState) key() [9]int {
	return [9]int{
		s.Caster.HP, s.Caster.Shield, s.Caster.Mana,
		s.Boss.HP, s.Boss.Attack,
		int(s.Timers[EffectShield]), int(s.Timers[EffectPoison]), int(s.Timers[EffectRecharge]),
		int(s.Difficulty),
	}
}
