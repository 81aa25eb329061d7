package search

import (
	"container/heap"

	"duelsim/internal/combat"
)

type node struct {
	cost  int
	state combat.DuelState
}

// cheaperFirst orders nodes by ascending cost, then by state so that ties
// pop in the same order on every run.
func cheaperFirst(a, b node) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.state.Less(b.state)
}

type frontier []node

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return cheaperFirst(f[i], f[j]) }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(node)) }
func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}

func (f *frontier) push(n node) { heap.Push(f, n) }
func (f *frontier) pop() node   { return heap.Pop(f).(node) }
