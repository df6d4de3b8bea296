package app

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"split-ca/internal/compositor"
	"split-ca/internal/core"
	"split-ca/internal/rules"
	"split-ca/internal/servicepoint"
)

var (
	// ErrInvalidProbability is returned for -probability outside [0, 1].
	ErrInvalidProbability = errors.New("app: probability must be within [0, 1]")
	// ErrInvalidTPS is returned for a non-positive -tps.
	ErrInvalidTPS = errors.New("app: tps must be positive")
	// ErrMissingDestination is returned for an empty -destination.
	ErrMissingDestination = errors.New("app: destination is required")
)

// Config represents the command-line parameters for the application.
type Config struct {
	Destination string
	Compress    string
	Probability float64
	TPS         int
	Seed        int64
	PixelRule   string
	LumaRule    string
	LumaEvery   int
	Speed       int
	LogLevel    string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Destination: servicepoint.DefaultAddress,
		Compress:    "none",
		Probability: 0.5,
		TPS:         int(time.Second / servicepoint.FramePacing),
		PixelRule:   rules.Random,
		LumaRule:    rules.Random,
		LumaEvery:   10,
		Speed:       1,
		LogLevel:    "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	names := strings.Join(append([]string{rules.Random}, rules.Names()...), ", ")
	fs.StringVar(&c.Destination, "destination", c.Destination, "display address host:port")
	fs.StringVar(&c.Compress, "compress", c.Compress, "bitmap compression: none or zlib")
	fs.Float64Var(&c.Probability, "probability", c.Probability, "alive probability when randomizing pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "target ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 uses the clock")
	fs.StringVar(&c.PixelRule, "pixel-rule", c.PixelRule, "rule for the pixel channel: "+names)
	fs.StringVar(&c.LumaRule, "luma-rule", c.LumaRule, "rule for the brightness channel: "+names)
	fs.IntVar(&c.LumaEvery, "luma-every", c.LumaEvery, "step brightness automata every n ticks")
	fs.IntVar(&c.Speed, "speed", c.Speed, "initial divider velocity in columns per tick")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Validate checks the values that do not depend on the environment.
func (c *Config) Validate() error {
	if c.Destination == "" {
		return ErrMissingDestination
	}
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, c.Probability)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTPS, c.TPS)
	}
	if _, err := servicepoint.ParseCompression(c.Compress); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, name := range []string{c.PixelRule, c.LumaRule} {
		if name == rules.Random {
			continue
		}
		if _, err := rules.Lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("app: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Compositor builds the compositor configuration for the display, drawing
// synthesized rules from synth.
func (c *Config) Compositor(synth *rules.Synthesizer) (compositor.Config, error) {
	pixels, err := rules.NewSource(c.PixelRule, synth.Binary)
	if err != nil {
		return compositor.Config{}, fmt.Errorf("app: pixel rule: %w", err)
	}
	luma, err := rules.NewSource(c.LumaRule, synth.Bytes)
	if err != nil {
		return compositor.Config{}, fmt.Errorf("app: luma rule: %w", err)
	}
	return compositor.Config{
		Pixels:      core.Size{W: servicepoint.PixelWidth, H: servicepoint.PixelHeight},
		TileSize:    servicepoint.TileSize,
		LumaEvery:   c.LumaEvery,
		Probability: c.Probability,
		Velocity:    c.Speed,
		PixelRules:  pixels,
		LumaRules:   luma,
	}, nil
}
