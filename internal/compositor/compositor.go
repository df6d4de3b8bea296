// Package compositor runs two automata per display channel side by side and
// merges them at a moving divider.
package compositor

import (
	"errors"
	"fmt"
	"log/slog"

	"split-ca/internal/automaton"
	"split-ca/internal/core"
	"split-ca/internal/rules"
)

// Side names one half of the split screen.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

var (
	// ErrInvalidSize is returned for pixel sizes that do not tile evenly.
	ErrInvalidSize = errors.New("compositor: invalid size")
	// ErrInvalidProbability is returned for alive probabilities outside [0, 1].
	ErrInvalidProbability = errors.New("compositor: probability outside [0, 1]")
	// ErrMissingSource is returned when a channel has no rule source.
	ErrMissingSource = errors.New("compositor: missing rule source")
)

// Config describes the composited display and where new rules come from.
type Config struct {
	Pixels   core.Size
	TileSize int

	// LumaEvery steps the brightness automata once per this many ticks.
	LumaEvery   int
	Probability float64
	Velocity    int

	PixelRules rules.Source
	LumaRules  rules.Source
}

func (c Config) validate() error {
	if c.TileSize <= 0 || c.Pixels.W <= 0 || c.Pixels.H <= 0 ||
		c.Pixels.W%c.TileSize != 0 || c.Pixels.H%c.TileSize != 0 {
		return fmt.Errorf("%w: %dx%d pixels with %d pixel tiles", ErrInvalidSize, c.Pixels.W, c.Pixels.H, c.TileSize)
	}
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, c.Probability)
	}
	if c.PixelRules == nil || c.LumaRules == nil {
		return ErrMissingSource
	}
	return nil
}

// Frame is one composited tick. The grids are owned by the compositor and
// overwritten on the next Tick.
type Frame struct {
	Pixels *core.Grid
	Luma   *core.Grid
}

// Compositor owns four automata: a pixel and a brightness automaton for
// each side of the divider.
type Compositor struct {
	cfg Config
	rng *core.RNG
	log *slog.Logger

	pixels  [2]*automaton.Automaton
	luma    [2]*automaton.Automaton
	divider Divider

	tick  uint64
	swaps int

	outPixels *core.Grid
	outLuma   *core.Grid
}

// New seeds all four automata from rng and the configured rule sources.
func New(cfg Config, rng *core.RNG, logger *slog.Logger) (*Compositor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.LumaEvery <= 0 {
		cfg.LumaEvery = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	tiles := cfg.Tiles()
	c := &Compositor{
		cfg:       cfg,
		rng:       rng,
		log:       logger,
		divider:   Divider{Velocity: cfg.Velocity, Width: cfg.Pixels.W},
		outPixels: core.NewGrid(cfg.Pixels.W, cfg.Pixels.H),
		outLuma:   core.NewGrid(tiles.W, tiles.H),
	}
	for _, s := range []Side{Left, Right} {
		c.pixels[s] = automaton.New(cfg.Pixels.W, cfg.Pixels.H, cfg.PixelRules())
		c.luma[s] = automaton.New(tiles.W, tiles.H, cfg.LumaRules())
		c.randomizePixels(s)
		c.randomizeLuma(s)
	}
	return c, nil
}

// Tiles returns the brightness channel dimensions.
func (c Config) Tiles() core.Size {
	return core.Size{W: c.Pixels.W / c.TileSize, H: c.Pixels.H / c.TileSize}
}

// Tick steps the automata, advances the divider, retires a side if the
// divider wrapped, and composites the result.
func (c *Compositor) Tick() Frame {
	c.pixels[Left].Step()
	c.pixels[Right].Step()
	if c.tick%uint64(c.cfg.LumaEvery) == 0 {
		c.luma[Left].Step()
		c.luma[Right].Step()
	}
	c.tick++

	switch c.divider.Advance() {
	case EdgeRight:
		c.retire(Left)
	case EdgeLeft:
		c.retire(Right)
	}
	return c.Frame()
}

// Frame composites the current generations without stepping.
func (c *Compositor) Frame() Frame {
	Merge(c.outPixels, c.pixels[Left].Grid(), c.pixels[Right].Grid(), c.divider.Index)
	Merge(c.outLuma, c.luma[Left].Grid(), c.luma[Right].Grid(), c.divider.Index/c.cfg.TileSize)
	return Frame{Pixels: c.outPixels, Luma: c.outLuma}
}

// retire exchanges the sides and gives the side at fresh a new grid and
// rule. The automaton that covered the whole screen keeps running on the
// other side.
func (c *Compositor) retire(fresh Side) {
	c.swapSides()
	c.swaps++
	c.reseed(fresh)
	c.log.Info("divider wrapped",
		"fresh", fresh.String(),
		"pixels", c.pixels[fresh].Rule().String(),
		"luma", c.luma[fresh].Rule().String(),
		"swaps", c.swaps)
}

func (c *Compositor) swapSides() {
	c.pixels[Left], c.pixels[Right] = c.pixels[Right], c.pixels[Left]
	c.luma[Left], c.luma[Right] = c.luma[Right], c.luma[Left]
}

func (c *Compositor) reseed(s Side) {
	c.pixels[s].SetRule(c.cfg.PixelRules())
	c.luma[s].SetRule(c.cfg.LumaRules())
	c.randomizePixels(s)
	c.randomizeLuma(s)
}

func (c *Compositor) randomizePixels(s Side) {
	c.pixels[s].Randomize(c.rng, automaton.SeedBernoulli, c.cfg.Probability)
}

func (c *Compositor) randomizeLuma(s Side) {
	c.luma[s].Randomize(c.rng, automaton.SeedUniform, 0)
}

// Randomize refills both grids of side s. Rules and the divider are kept.
func (c *Compositor) Randomize(s Side) {
	c.randomizePixels(s)
	c.randomizeLuma(s)
	c.log.Info("randomized", "side", s.String())
}

// RandomizeLuma refills only the brightness grid of side s.
func (c *Compositor) RandomizeLuma(s Side) {
	c.randomizeLuma(s)
	c.log.Info("randomized luma", "side", s.String())
}

// Accelerate pushes the divider one more column per tick to the right.
func (c *Compositor) Accelerate() {
	c.divider.Accelerate()
	c.log.Info("increased divider speed", "velocity", c.divider.Velocity)
}

// Decelerate pushes the divider one more column per tick to the left.
func (c *Compositor) Decelerate() {
	c.divider.Decelerate()
	c.log.Info("decreased divider speed", "velocity", c.divider.Velocity)
}

// Swap exchanges the left and right automata without reseeding.
func (c *Compositor) Swap() {
	c.swapSides()
	c.log.Info("swapped sides")
}

// Resynthesize draws new rules for all four automata, keeping their grids.
func (c *Compositor) Resynthesize() {
	for _, s := range []Side{Left, Right} {
		c.pixels[s].SetRule(c.cfg.PixelRules())
		c.luma[s].SetRule(c.cfg.LumaRules())
		c.log.Info("new rules", "side", s.String(),
			"pixels", c.pixels[s].Rule().String(),
			"luma", c.luma[s].Rule().String())
	}
}

// Divider returns a copy of the divider state.
func (c *Compositor) Divider() Divider { return c.divider }

// Swaps counts how often the divider has wrapped.
func (c *Compositor) Swaps() int { return c.swaps }

// Pixels returns the pixel automaton on side s.
func (c *Compositor) Pixels(s Side) *automaton.Automaton { return c.pixels[s] }

// Luma returns the brightness automaton on side s.
func (c *Compositor) Luma(s Side) *automaton.Automaton { return c.luma[s] }
