package rules

import (
	"errors"
	"fmt"
	"sort"
)

// Random is the configuration name that selects the Synthesizer instead of
// a preset.
const Random = "random"

// ErrUnknownRule is returned by Lookup for unregistered names.
var ErrUnknownRule = errors.New("rules: unknown rule")

// Factory constructs a preset Rule.
type Factory func() Rule

var presets = map[string]Factory{}

// Register adds a preset factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	presets[name] = f
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Rule, error) {
	f, ok := presets[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}
	return f(), nil
}

// Names lists registered presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func binary(name string, birth, survive Counts) Rule {
	return Rule{Name: name, Kind: Binary, Kernel: Moore(), Birth: birth, Survive: survive}
}

// GameOfLife is Conway's B3/S23.
func GameOfLife() Rule { return binary("life", CountsOf(3), CountsOf(2, 3)) }

// HighLife is B36/S23.
func HighLife() Rule { return binary("highlife", CountsOf(3, 6), CountsOf(2, 3)) }

// Seeds is B2/S: every live cell dies each generation.
func Seeds() Rule { return binary("seeds", CountsOf(2), 0) }

// DayAndNight is B3678/S34678.
func DayAndNight() Rule {
	return binary("daynight", CountsOf(3, 6, 7, 8), CountsOf(3, 4, 6, 7, 8))
}

// Mazecetric is B3/S1234.
func Mazecetric() Rule { return binary("mazecetric", CountsOf(3), CountRange(1, 4)) }

// BriansBrain is the alive, dying, dead cycle where dead cells fire on
// exactly two firing neighbors.
func BriansBrain() Rule {
	return Rule{Name: "briansbrain", Kind: Brain, Kernel: Moore()}
}

// ContinuousLife runs B3/S23 over byte state with the alive cut-off at the
// midpoint, stepping values by 10 toward 255 or 0.
func ContinuousLife() Rule {
	return Rule{
		Name:      "continuous-life",
		Kind:      Gradient,
		Kernel:    Moore(),
		Birth:     CountsOf(3),
		Survive:   CountsOf(2, 3),
		Threshold: 128,
		Increase:  10,
		Decrease:  10,
	}
}

// Equalize diffuses byte values over the diagonal neighbors. Averages that
// land on a multiple of 16 go dark and those one below go bright.
func Equalize() Rule {
	return Rule{Name: "equalizer", Kind: Equalizer, Kernel: Diagonal()}
}

func init() {
	Register("life", GameOfLife)
	Register("highlife", HighLife)
	Register("seeds", Seeds)
	Register("daynight", DayAndNight)
	Register("mazecetric", Mazecetric)
	Register("briansbrain", BriansBrain)
	Register("continuous-life", ContinuousLife)
	Register("equalizer", Equalize)
}

// Source yields the rule for a freshly seeded automaton.
type Source func() Rule

// NewSource resolves a configured rule name. Random selects synth; any other
// name must be a registered preset.
func NewSource(name string, synth Source) (Source, error) {
	if name == Random {
		return synth, nil
	}
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}
	return Source(f), nil
}
