package rules

import (
	"errors"
	"fmt"
	"slices"

	"split-ca/internal/core"
)

// Kind selects how a Rule counts neighbors and derives the next state.
type Kind uint8

const (
	// Binary is a two-level birth/survival automaton.
	Binary Kind = iota
	// Brain is the three-state alive, dying, dead cycle of Brian's Brain.
	Brain
	// Gradient counts neighbors at or above Threshold and walks the cell
	// value up or down by fixed steps.
	Gradient
	// Weighted sums raw neighbor values, divides by Threshold and then walks
	// like Gradient.
	Weighted
	// Equalizer diffuses values toward the local average, with some sums
	// forced to the extremes.
	Equalizer
)

func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Brain:
		return "brain"
	case Gradient:
		return "gradient"
	case Weighted:
		return "weighted"
	case Equalizer:
		return "equalizer"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Brian's Brain states.
const (
	BrainAlive = core.Alive
	BrainDying = core.Alive / 2
	BrainDead  = core.Dead
)

const equalizerPeriod = 16

var (
	// ErrEmptyKernel is returned by Validate for a kernel without neighbors.
	ErrEmptyKernel = errors.New("rules: kernel has no neighbors")
	// ErrEmptyBirth is returned by Validate when nothing can ever be born.
	ErrEmptyBirth = errors.New("rules: empty birth set")
	// ErrEmptySurvive is returned for synthesized rules under which no cell
	// can ever survive.
	ErrEmptySurvive = errors.New("rules: empty survival set")
	// ErrZeroThreshold is returned by Validate for weighted rules that would
	// divide by zero.
	ErrZeroThreshold = errors.New("rules: zero threshold")
)

// Rule fully describes one automaton's semantics as plain data. The neighbor
// count and transition are dispatched on Kind, so a Rule can be copied,
// compared and logged freely.
type Rule struct {
	Name   string
	Kind   Kind
	Kernel Kernel

	Birth   Counts
	Survive Counts

	// Threshold is the alive cut-off for Gradient and the divisor for
	// Weighted rules.
	Threshold uint8
	Increase  uint8
	Decrease  uint8
}

// CountNeighbor returns the contribution of a neighbor in state s seen
// through kernel weight w.
func (r Rule) CountNeighbor(s, w uint8) int {
	if w == 0 {
		return 0
	}
	switch r.Kind {
	case Binary:
		if core.IsAlive(s) {
			return int(w)
		}
	case Brain:
		if s == BrainAlive {
			return int(w)
		}
	case Gradient:
		if s >= r.Threshold {
			return int(w)
		}
	case Weighted, Equalizer:
		return int(w) * int(s)
	}
	return 0
}

// NextState returns the state following old given the summed neighbor
// contributions.
func (r Rule) NextState(old uint8, sum int) uint8 {
	switch r.Kind {
	case Binary:
		if r.passes(core.IsAlive(old), sum) {
			return core.Alive
		}
		return core.Dead
	case Brain:
		switch {
		case old == BrainAlive:
			return BrainDying
		case old == BrainDying:
			return BrainDead
		case old == BrainDead:
			if sum == 2 {
				return BrainAlive
			}
			return BrainDead
		case old > BrainDying:
			return BrainAlive
		default:
			return BrainDead
		}
	case Gradient:
		return r.walk(old, r.passes(old >= r.Threshold, sum))
	case Weighted:
		n := sum / int(r.Threshold)
		return r.walk(old, r.passes(old >= r.Threshold, n))
	case Equalizer:
		avg := sum / r.Kernel.MaxSum()
		switch avg % equalizerPeriod {
		case 0:
			return core.Dead
		case equalizerPeriod - 1:
			return core.Alive
		}
		return uint8(int(old) + (avg-int(old))/2)
	}
	panic(fmt.Sprintf("rules: unknown kind %d", r.Kind))
}

func (r Rule) passes(alive bool, n int) bool {
	if alive {
		return r.Survive.Has(n)
	}
	return r.Birth.Has(n)
}

func (r Rule) walk(old uint8, up bool) uint8 {
	v := int(old)
	if up {
		v += int(r.Increase)
	} else {
		v -= int(r.Decrease)
	}
	return uint8(min(max(v, 0), 255))
}

// Validate checks the invariants every steppable rule must hold.
func (r Rule) Validate() error {
	if r.Kernel.Empty() {
		return ErrEmptyKernel
	}
	switch r.Kind {
	case Binary, Gradient, Weighted:
		if r.Birth.Empty() {
			return ErrEmptyBirth
		}
	}
	if r.Kind == Weighted && r.Threshold == 0 {
		return ErrZeroThreshold
	}
	if r.Kind == Equalizer && r.Kernel.MaxSum() == 0 {
		return ErrEmptyKernel
	}
	return nil
}

// MustValidate panics if r is not steppable.
func (r Rule) MustValidate() Rule {
	if err := r.Validate(); err != nil {
		panic(fmt.Sprintf("rules: invalid rule %s: %v", r, err))
	}
	return r
}

// Equal reports whether two rules describe the same automaton.
func (r Rule) Equal(o Rule) bool {
	return r.Name == o.Name && r.Kind == o.Kind &&
		r.Kernel.size == o.Kernel.size && slices.Equal(r.Kernel.weights, o.Kernel.weights) &&
		r.Birth == o.Birth && r.Survive == o.Survive &&
		r.Threshold == o.Threshold && r.Increase == o.Increase && r.Decrease == o.Decrease
}

// String renders the rule for logs, e.g. "life B3/S23 moore".
func (r Rule) String() string {
	switch r.Kind {
	case Binary:
		return fmt.Sprintf("%s B%s/S%s %s", r.Name, r.Birth, r.Survive, r.Kernel)
	case Gradient, Weighted:
		return fmt.Sprintf("%s B%s/S%s %s t=%d +%d/-%d", r.Name, r.Birth, r.Survive, r.Kernel, r.Threshold, r.Increase, r.Decrease)
	default:
		return fmt.Sprintf("%s %s", r.Name, r.Kernel)
	}
}
