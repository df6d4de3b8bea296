package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n).
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Range returns a random int in [lo, hi].
func (r *RNG) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Perm returns a random permutation of [0, n).
func (r *RNG) Perm(n int) []int { return r.r.Perm(n) }

// Uint8 returns a uniformly distributed byte.
func (r *RNG) Uint8() uint8 { return uint8(r.r.Uint32()) }

// FillBernoulli sets each cell to Alive with probability p, Dead otherwise.
func (r *RNG) FillBernoulli(g *Grid, p float64) {
	cells := g.Cells()
	for i := range cells {
		if r.r.Float64() < p {
			cells[i] = Alive
			continue
		}
		cells[i] = Dead
	}
}

// FillUniform sets each cell to a uniformly distributed byte.
func (r *RNG) FillUniform(g *Grid) {
	cells := g.Cells()
	for i := range cells {
		cells[i] = r.Uint8()
	}
}
