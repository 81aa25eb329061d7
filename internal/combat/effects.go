package combat

type Effect uint8

const (
	EffectShield Effect = iota
	EffectPoison
	EffectRecharge

	effectCount
)

// Effects in the order they tick at the start of every half-turn.
var Effects = [effectCount]Effect{EffectShield, EffectPoison, EffectRecharge}

// EffectTimers holds the remaining ticks per effect; 0 means inactive.
type EffectTimers [effectCount]uint8

func (t EffectTimers) Active(e Effect) bool { return t[e] > 0 }

func (t EffectTimers) Remaining(e Effect) int { return int(t[e]) }

const (
	shieldBonus   = 7
	poisonDamage  = 3
	rechargeBonus = 101
)

type effectSpec struct {
	Name     string
	Duration uint8
	// hooks mutate a private copy owned by the engine
	Activate func(s *DuelState)
	Tick     func(s *DuelState)
	Expire   func(s *DuelState)
}

func noop(*DuelState) {}

var effectSpecs = [effectCount]effectSpec{
	EffectShield: {
		Name:     "shield",
		Duration: 6,
		Activate: func(s *DuelState) { s.Caster.Shield += shieldBonus },
		Tick:     noop,
		Expire:   func(s *DuelState) { s.Caster.Shield -= shieldBonus },
	},
	EffectPoison: {
		Name:     "poison",
		Duration: 6,
		Activate: noop,
		Tick:     func(s *DuelState) { s.Boss.HP = dealDamage(s.Boss.HP, poisonDamage) },
		Expire:   noop,
	},
	EffectRecharge: {
		Name:     "recharge",
		Duration: 5,
		Activate: noop,
		Tick:     func(s *DuelState) { s.Caster.Mana += rechargeBonus },
		Expire:   noop,
	},
}

func (e Effect) String() string {
	if e < effectCount {
		return effectSpecs[e].Name
	}
	return "unknown"
}

// Duration is the number of ticks a fresh activation lasts.
func (e Effect) Duration() int { return int(effectSpecs[e].Duration) }
