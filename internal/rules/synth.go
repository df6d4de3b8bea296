package rules

import (
	"fmt"

	"split-ca/internal/core"
)

// Bounds for synthesized byte rules.
const (
	MinDelta = 5
	MaxDelta = 40
)

// Synthesizer invents new rules from bounded random draws. Rules it returns
// are plain data; stepping with them is deterministic.
type Synthesizer struct {
	rng *core.RNG
}

// NewSynthesizer returns a Synthesizer drawing from rng.
func NewSynthesizer(rng *core.RNG) *Synthesizer {
	return &Synthesizer{rng: rng}
}

func (s *Synthesizer) kernel() Kernel {
	switch s.rng.IntN(3) {
	case 0:
		return Moore()
	case 1:
		return VonNeumann()
	default:
		return Diagonal()
	}
}

// counts draws a non-empty set of distinct values from [lo, hi].
func (s *Synthesizer) counts(lo, hi int) Counts {
	span := hi - lo + 1
	n := 1 + s.rng.IntN(span)
	var c Counts
	for _, v := range s.rng.Perm(span)[:n] {
		c = c.With(lo + v)
	}
	return c
}

// Binary returns a random two-level rule. Birth never contains 0, so empty
// regions stay empty.
func (s *Synthesizer) Binary() Rule {
	k := s.kernel()
	limit := k.Neighbors()
	r := Rule{
		Kind:    Binary,
		Kernel:  k,
		Birth:   s.counts(1, limit),
		Survive: s.counts(0, limit),
	}
	r.Name = fmt.Sprintf("b%s-s%s", r.Birth, r.Survive)
	return mustSynthesized(r)
}

// Bytes returns a random Weighted rule over byte state.
func (s *Synthesizer) Bytes() Rule {
	k := s.kernel()
	limit := k.Neighbors()
	r := Rule{
		Kind:      Weighted,
		Kernel:    k,
		Birth:     s.counts(0, limit),
		Survive:   s.counts(0, limit),
		Threshold: uint8(s.rng.Range(1, 255)),
		Increase:  uint8(s.rng.Range(MinDelta, MaxDelta)),
		Decrease:  uint8(s.rng.Range(MinDelta, MaxDelta)),
	}
	r.Name = fmt.Sprintf("w%s-s%s", r.Birth, r.Survive)
	return mustSynthesized(r)
}

func mustSynthesized(r Rule) Rule {
	r.MustValidate()
	if r.Survive.Empty() {
		panic(fmt.Sprintf("rules: synthesized %s: %v", r, ErrEmptySurvive))
	}
	return r
}
