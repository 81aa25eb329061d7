package util

import "math/rand"

// New returns a deterministic generator for rollouts. Seed 0 is mapped to 1
// so an unset flag still reproduces.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Split derives an independent generator per worker from a base seed.
func Split(seed int64, worker int) *rand.Rand {
	return New(seed + int64(worker)*7919)
}
