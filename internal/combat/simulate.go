package combat

import (
	"encoding/json"
	"fmt"
)

type ReplayResult struct {
	Win      bool           `json:"win"`
	Winner   string         `json:"winner"`
	Rounds   int            `json:"rounds"`
	ManaUsed int            `json:"mana_used"`
	ByMove   map[string]int `json:"mana_by_move,omitempty"`
	Final    DuelState      `json:"-"`
	Events   []Event        `json:"events,omitempty"`
	Err      string         `json:"error,omitempty"`
}

// Replay plays moves round by round from initial and stops at the first
// winner or illegal move. With record set the result carries the event log.
func Replay(initial DuelState, moves []Move, record bool) ReplayResult {
	var events []Event
	round := 0
	emit := func(typ string, payload map[string]any) {
		if record {
			events = append(events, Event{Round: round, Type: typ, Payload: payload})
		}
	}
	logLine := func(format string, args ...any) {
		if !record {
			return
		}
		emit("LogLine", map[string]any{"text": fmt.Sprintf(format, args...)})
	}

	res := ReplayResult{ByMove: map[string]int{}}
	s := initial
	w := s.Winner()
	for _, m := range moves {
		if w != WinnerNone {
			break
		}
		round++

		logLine("-- Caster turn --")
		logLine("- %s", s.Caster)
		logLine("- %s", s.Boss)
		next, cw, err := advanceCaster(s, m, emit)
		if err != nil {
			res.Err = fmt.Sprintf("round %d: %s: %v", round, m, err)
			break
		}
		s, w = next, cw
		// the caster only loses its own half-turn to the hard-mode damage,
		// which comes before the move is even checked
		if w == WinnerBoss {
			break
		}
		// an accepted move is charged even when a tick ends the duel first
		res.ManaUsed += m.Cost()
		res.ByMove[m.String()] += m.Cost()
		logLine("Caster casts %s.", m)
		if w != WinnerNone {
			break
		}

		logLine("-- Boss turn --")
		logLine("- %s", s.Caster)
		logLine("- %s", s.Boss)
		s, w, err = advanceBoss(s, emit)
		if err != nil {
			res.Err = fmt.Sprintf("round %d: boss: %v", round, err)
			break
		}
		if w == WinnerNone {
			logLine("Boss attacks.")
		}
	}

	res.Rounds = round
	res.Final = s
	res.Winner = w.String()
	res.Win = w == WinnerCaster
	if record {
		logLine("Winner: %s", w)
		res.Events = events
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
