package inmemory

import (
	"sync"

	"duelsim/internal/search"
)

type Snapshot struct {
	SearchTotal    uint64                  `json:"search_total"`
	SearchSolved   uint64                  `json:"search_solved"`
	SearchUnsolved uint64                  `json:"search_unsolved"`
	Expanded       uint64                  `json:"expanded"`
	Pushed         uint64                  `json:"pushed"`
	ByLabel        map[string]search.Stats `json:"by_label"`
}

// Recorder collects search counters from concurrently running solvers.
type Recorder struct {
	mu       sync.Mutex
	solved   uint64
	unsolved uint64
	expanded uint64
	pushed   uint64
	byLabel  map[string]search.Stats
}

func NewRecorder() *Recorder {
	return &Recorder{
		byLabel: map[string]search.Stats{},
	}
}

func (r *Recorder) RecordSearch(label string, st search.Stats, found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if found {
		r.solved++
	} else {
		r.unsolved++
	}
	r.expanded += uint64(st.Expanded)
	r.pushed += uint64(st.Pushed)
	r.byLabel[label] = st
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		SearchSolved:   r.solved,
		SearchUnsolved: r.unsolved,
		SearchTotal:    r.solved + r.unsolved,
		Expanded:       r.expanded,
		Pushed:         r.pushed,
		ByLabel:        make(map[string]search.Stats, len(r.byLabel)),
	}
	for k, v := range r.byLabel {
		out.ByLabel[k] = v
	}
	return out
}
