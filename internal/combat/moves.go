package combat

import (
	"fmt"
	"strings"
)

type Move uint8

const (
	Strike Move = iota
	Drain
	Guard
	Poison
	Recharge

	moveCount
)

// Moves is the full catalog in expansion order.
var Moves = [moveCount]Move{Strike, Drain, Guard, Poison, Recharge}

type moveSpec struct {
	Name   string
	Cost   int
	Damage int
	Heal   int
	Effect Effect
	// HasEffect marks moves whose payload is a prolonged effect
	HasEffect bool
}

var moveSpecs = [moveCount]moveSpec{
	Strike:   {Name: "strike", Cost: 53, Damage: 4},
	Drain:    {Name: "drain", Cost: 73, Damage: 2, Heal: 2},
	Guard:    {Name: "guard", Cost: 113, Effect: EffectShield, HasEffect: true},
	Poison:   {Name: "poison", Cost: 173, Effect: EffectPoison, HasEffect: true},
	Recharge: {Name: "recharge", Cost: 229, Effect: EffectRecharge, HasEffect: true},
}

var moveAliases = map[string]Move{
	"missile":       Strike,
	"magic_missile": Strike,
	"magicmissile":  Strike,
	"shield":        Guard,
}

func (m Move) Cost() int { return moveSpecs[m].Cost }

// Effect reports the prolonged effect the move activates, if any.
func (m Move) Effect() (Effect, bool) {
	sp := moveSpecs[m]
	return sp.Effect, sp.HasEffect
}

func (m Move) String() string {
	if m < moveCount {
		return moveSpecs[m].Name
	}
	return "unknown"
}

func (m Move) MarshalText() ([]byte, error) {
	if m >= moveCount {
		return nil, fmt.Errorf("unknown move %d", m)
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	v, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func ParseMove(name string) (Move, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Moves {
		if moveSpecs[m].Name == key {
			return m, nil
		}
	}
	if m, ok := moveAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown move %q", name)
}

// ParseMoves reads a comma separated move list.
func ParseMoves(list string) ([]Move, error) {
	var out []Move
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// TotalCost sums the mana cost of a move sequence.
func TotalCost(moves []Move) int {
	total := 0
	for _, m := range moves {
		total += m.Cost()
	}
	return total
}
