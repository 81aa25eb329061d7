package search

import (
	"math/rand"

	"duelsim/internal/combat"
)

const maxRolloutRounds = 500

// Rollout plays n random games from initial and returns the cheapest winning
// cost among them. ok is false when none of the playouts won.
func Rollout(initial combat.DuelState, rng *rand.Rand, n int) (best int, ok bool) {
	legal := make([]combat.DuelState, 0, len(combat.Moves))
	costs := make([]int, 0, len(combat.Moves))
	for i := 0; i < n; i++ {
		s, cost := initial, 0
		for round := 0; round < maxRolloutRounds && !s.Finished(); round++ {
			if ok && cost >= best {
				break
			}
			legal, costs = legal[:0], costs[:0]
			for _, m := range combat.Moves {
				next, w, err := combat.PlayRound(s, m)
				if err != nil || w == combat.WinnerBoss {
					continue
				}
				legal = append(legal, next)
				costs = append(costs, m.Cost())
			}
			if len(legal) == 0 {
				break
			}
			pick := rng.Intn(len(legal))
			s = legal[pick]
			cost += costs[pick]
		}
		if s.Winner() == combat.WinnerCaster && (!ok || cost < best) {
			best, ok = cost, true
		}
	}
	return best, ok
}
