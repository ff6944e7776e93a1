// Package rng provides the deterministic random source used by the
// simulation. Every session owns one RNG; given the same seed and the
// same sequence of draws, a session replays identically, which is what
// makes saved games restorable mid-run.
package rng

import "math/rand"

// RNG wraps math/rand.Rand with position tracking. Position increments
// once per draw, so a saved (seed, position) pair restores the exact
// generator state.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Restore creates an RNG and advances it to the given position,
// reproducing the state a saved session left off at.
func Restore(seed, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	r.pos = position
	return r
}

// draw consumes exactly one Int63 per call. All public draws go
// through here so Restore's replay matches call for call.
func (r *RNG) draw() int64 {
	r.pos++
	return r.src.Int63()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Intn returns a random integer in [0, n). It panics when n is not
// positive.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(r.draw() % int64(n))
}

// Range returns a random integer in [min, max] inclusive.
func (r *RNG) Range(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + r.Intn(max-min+1)
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return r.Intn(sides) + 1
}

// Chance returns true with the given percent probability. Values at or
// below zero never succeed; values at or above 100 always do.
func (r *RNG) Chance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.Intn(100) < percent
}

// Shuffle applies a Fisher-Yates shuffle over n elements through swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
