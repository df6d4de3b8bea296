package automaton

import (
	"split-ca/internal/core"
	"split-ca/internal/rules"
)

var _ core.Sim = (*Automaton)(nil)

// Automaton pairs a grid with the rule that evolves it. The grid is double
// buffered so stepping never allocates.
type Automaton struct {
	rule rules.Rule
	cur  *core.Grid
	nxt  *core.Grid
	gen  uint64
}

// New returns an automaton with an all-dead grid of the given size.
func New(w, h int, r rules.Rule) *Automaton {
	return &Automaton{rule: r.MustValidate(), cur: core.NewGrid(w, h), nxt: core.NewGrid(w, h)}
}

// Name returns the rule name.
func (a *Automaton) Name() string { return a.rule.Name }

// Size returns the grid dimensions.
func (a *Automaton) Size() core.Size { return a.cur.Size() }

// Cells exposes the current grid values.
func (a *Automaton) Cells() []uint8 { return a.cur.Cells() }

// Grid returns the current generation.
func (a *Automaton) Grid() *core.Grid { return a.cur }

// Rule returns the rule in effect.
func (a *Automaton) Rule() rules.Rule { return a.rule }

// SetRule replaces the rule without touching the grid.
func (a *Automaton) SetRule(r rules.Rule) {
	a.rule = r.MustValidate()
	a.gen = 0
}

// Generation counts steps since the last reseed or rule change.
func (a *Automaton) Generation() uint64 { return a.gen }

// Step advances the automaton by one generation.
func (a *Automaton) Step() {
	StepInto(a.nxt, a.cur, a.rule)
	a.cur, a.nxt = a.nxt, a.cur
	a.gen++
}

// Seeding selects how Randomize fills a grid.
type Seeding uint8

const (
	// SeedBernoulli sets cells alive with a fixed probability.
	SeedBernoulli Seeding = iota
	// SeedUniform draws every cell uniformly from the byte range.
	SeedUniform
)

// Randomize refills the grid from rng. p is the alive probability for
// SeedBernoulli and is ignored otherwise.
func (a *Automaton) Randomize(rng *core.RNG, mode Seeding, p float64) {
	switch mode {
	case SeedUniform:
		rng.FillUniform(a.cur)
	default:
		rng.FillBernoulli(a.cur, p)
	}
	a.gen = 0
}
