package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"duelsim/internal/combat"
)

var ErrCanceled = errors.New("search canceled")

// Observer receives the counters of every finished search.
type Observer interface {
	RecordSearch(label string, st Stats, found bool)
}

type Stats struct {
	Expanded    int `json:"expanded"`
	Pushed      int `json:"pushed"`
	Stale       int `json:"stale"`
	Illegal     int `json:"illegal"`
	Lost        int `json:"lost"`
	OverBound   int `json:"over_bound"`
	MaxFrontier int `json:"max_frontier"`
	Bound       int `json:"bound"`
}

type Result struct {
	// Found is false when no sequence of moves wins; Cost is then meaningless.
	Found bool `json:"found"`
	// Bounded marks a failed search that discarded states over the cost
	// bound, so a costlier win may still exist.
	Bounded bool          `json:"bounded,omitempty"`
	Cost    int           `json:"cost"`
	Moves   []combat.Move `json:"moves,omitempty"`
	Stats   Stats         `json:"stats"`
}

// Options configures a Solver. The zero value searches without a bound.
type Options struct {
	// MaxCost discards every state costing more than this; 0 disables it.
	MaxCost int
	// Rollouts random playouts drawn from Rng tighten MaxCost before searching.
	Rollouts int
	Rng      *rand.Rand
	// CheckEvery is the number of pops between context checks.
	CheckEvery int
	Label      string
	Observer   Observer
	Logger     *slog.Logger
}

type Solver struct {
	opts Options
	log  *slog.Logger
}

func NewSolver(opts Options) *Solver {
	if opts.CheckEvery <= 0 {
		opts.CheckEvery = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Solver{opts: opts, log: log}
}

type edge struct {
	from combat.DuelState
	move combat.Move
}

// Solve runs a uniform-cost search from initial and returns the cheapest
// winning move sequence.
func (s *Solver) Solve(ctx context.Context, initial combat.DuelState) (Result, error) {
	var st Stats
	bound := -1
	if s.opts.MaxCost > 0 {
		bound = s.opts.MaxCost
	}
	if s.opts.Rollouts > 0 && s.opts.Rng != nil {
		if c, ok := Rollout(initial, s.opts.Rng, s.opts.Rollouts); ok && (bound < 0 || c < bound) {
			bound = c
		}
	}
	st.Bound = bound

	best := map[combat.DuelState]int{initial: 0}
	parent := map[combat.DuelState]edge{}
	open := &frontier{}
	open.push(node{cost: 0, state: initial})
	st.Pushed++

	pops := 0
	for open.Len() > 0 {
		if pops%s.opts.CheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				s.finish(st, false)
				return Result{Stats: st}, fmt.Errorf("%w after %d expansions: %w", ErrCanceled, st.Expanded, err)
			}
		}
		pops++

		if open.Len() > st.MaxFrontier {
			st.MaxFrontier = open.Len()
		}
		cur := open.pop()

		switch cur.state.Winner() {
		case combat.WinnerCaster:
			res := Result{Found: true, Cost: cur.cost, Moves: pathTo(parent, initial, cur.state), Stats: st}
			s.finish(st, true)
			s.log.Debug("search solved", "label", s.opts.Label, "cost", cur.cost, "moves", len(res.Moves), "expanded", st.Expanded)
			return res, nil
		case combat.WinnerBoss:
			continue
		}

		if cur.cost > best[cur.state] {
			st.Stale++
			continue
		}
		st.Expanded++

		for _, m := range combat.Moves {
			next, w, err := combat.PlayRound(cur.state, m)
			if err != nil {
				st.Illegal++
				continue
			}
			if w == combat.WinnerBoss {
				st.Lost++
				continue
			}
			cost := cur.cost + m.Cost()
			if bound >= 0 && cost > bound {
				st.OverBound++
				continue
			}
			if known, ok := best[next]; ok && known <= cost {
				continue
			}
			best[next] = cost
			parent[next] = edge{from: cur.state, move: m}
			open.push(node{cost: cost, state: next})
			st.Pushed++
		}
	}

	s.finish(st, false)
	s.log.Debug("search exhausted", "label", s.opts.Label, "expanded", st.Expanded, "over_bound", st.OverBound)
	return Result{Bounded: st.OverBound > 0, Stats: st}, nil
}

func (s *Solver) finish(st Stats, found bool) {
	if s.opts.Observer != nil {
		s.opts.Observer.RecordSearch(s.opts.Label, st, found)
	}
}

func pathTo(parent map[combat.DuelState]edge, initial, goal combat.DuelState) []combat.Move {
	var rev []combat.Move
	for cur := goal; cur != initial; {
		e, ok := parent[cur]
		if !ok {
			break
		}
		rev = append(rev, e.move)
		cur = e.from
	}
	out := make([]combat.Move, len(rev))
	for i, m := range rev {
		out[len(rev)-1-i] = m
	}
	return out
}

// Verify re-plays moves from initial and returns the summed cost and the
// winner it ends on.
func Verify(initial combat.DuelState, moves []combat.Move) (int, combat.Winner, error) {
	s := initial
	w := s.Winner()
	cost := 0
	for i, m := range moves {
		if w != combat.WinnerNone {
			return cost, w, fmt.Errorf("move %d (%s): %w", i+1, m, combat.ErrGameFinished)
		}
		var err error
		s, w, err = combat.AdvanceCaster(s, m)
		if err != nil {
			return cost, w, fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
		if w == combat.WinnerBoss {
			continue
		}
		cost += m.Cost()
		if w == combat.WinnerNone {
			if s, w, err = combat.AdvanceBoss(s); err != nil {
				return cost, w, fmt.Errorf("move %d (%s): boss: %w", i+1, m, err)
			}
		}
	}
	return cost, w, nil
}
