package compositor

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"split-ca/internal/core"
	"split-ca/internal/rules"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	synth := rules.NewSynthesizer(core.NewRNG(21))
	return Config{
		Pixels:      core.Size{W: 32, H: 16},
		TileSize:    8,
		LumaEvery:   10,
		Probability: 0.5,
		Velocity:    1,
		PixelRules:  synth.Binary,
		LumaRules:   synth.Bytes,
	}
}

func TestNewValidates(t *testing.T) {
	cfg := testConfig()
	cfg.Pixels.W = 30
	if _, err := New(cfg, core.NewRNG(1), quietLogger()); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	cfg = testConfig()
	cfg.Probability = 1.5
	if _, err := New(cfg, core.NewRNG(1), quietLogger()); !errors.Is(err, ErrInvalidProbability) {
		t.Fatalf("expected ErrInvalidProbability, got %v", err)
	}
	cfg = testConfig()
	cfg.LumaRules = nil
	if _, err := New(cfg, core.NewRNG(1), quietLogger()); !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
}

func TestFrameDimensions(t *testing.T) {
	c, err := New(testConfig(), core.NewRNG(1), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	f := c.Tick()
	if f.Pixels.Size() != (core.Size{W: 32, H: 16}) {
		t.Fatalf("pixel frame %v", f.Pixels.Size())
	}
	if f.Luma.Size() != (core.Size{W: 4, H: 2}) {
		t.Fatalf("luma frame %v", f.Luma.Size())
	}
}

func TestSwapAfterWidthTicks(t *testing.T) {
	c, err := New(testConfig(), core.NewRNG(2), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	veteran := c.Pixels(Left)
	for i := 0; i < 31; i++ {
		c.Tick()
	}
	if c.Swaps() != 0 {
		t.Fatalf("swapped after %d ticks", 31)
	}
	c.Tick()
	if c.Swaps() != 1 {
		t.Fatalf("swaps %d after 32 ticks, expected 1", c.Swaps())
	}
	if c.Divider().Index != 0 {
		t.Fatalf("divider index %d, expected 0", c.Divider().Index)
	}
	if c.Pixels(Right) != veteran {
		t.Fatal("the automaton that filled the screen must continue on the right")
	}
	if c.Pixels(Left).Generation() != 0 {
		t.Fatal("left side must be freshly seeded")
	}
}

func TestSwapAtLeftEdgeReseedsRight(t *testing.T) {
	cfg := testConfig()
	cfg.Velocity = -1
	c, err := New(cfg, core.NewRNG(3), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	veteran := c.Pixels(Right)
	c.Tick()
	if c.Swaps() != 1 || c.Divider().Index != 32 {
		t.Fatalf("swaps %d index %d, expected 1 and 32", c.Swaps(), c.Divider().Index)
	}
	if c.Pixels(Left) != veteran {
		t.Fatal("the automaton that filled the screen must continue on the left")
	}
	if c.Pixels(Right).Generation() != 0 {
		t.Fatal("right side must be freshly seeded")
	}
}

func TestLumaStepsEveryTenTicks(t *testing.T) {
	cfg := testConfig()
	cfg.Velocity = 0
	c, err := New(cfg, core.NewRNG(4), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 25; i++ {
		c.Tick()
	}
	if g := c.Luma(Left).Generation(); g != 3 {
		t.Fatalf("luma generation %d after 25 ticks, expected 3", g)
	}
	if g := c.Pixels(Left).Generation(); g != 25 {
		t.Fatalf("pixel generation %d, expected 25", g)
	}
}

func TestFrameShowsSeamAndSides(t *testing.T) {
	cfg := testConfig()
	cfg.Velocity = 0
	cfg.PixelRules = func() rules.Rule { return rules.GameOfLife() }
	c, err := New(cfg, core.NewRNG(5), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	c.divider.Index = 12
	c.Pixels(Left).Grid().Fill(core.Dead)
	c.Pixels(Right).Grid().Fill(core.Alive)
	f := c.Frame()
	for x := 0; x < 32; x++ {
		want := x >= 12
		if core.IsAlive(f.Pixels.Get(x, 5)) != want {
			t.Fatalf("column %d alive=%v, expected %v", x, !want, want)
		}
	}
	for y := 0; y < 2; y++ {
		if f.Luma.Get(1, y) != Boundary {
			t.Fatalf("luma seam at tile 1 row %d = %d", y, f.Luma.Get(1, y))
		}
	}
}

func TestCommands(t *testing.T) {
	cfg := testConfig()
	cfg.Velocity = 0
	c, err := New(cfg, core.NewRNG(6), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	l, r := c.Pixels(Left), c.Pixels(Right)
	c.Swap()
	if c.Pixels(Left) != r || c.Pixels(Right) != l {
		t.Fatal("Swap must exchange sides")
	}
	c.Accelerate()
	c.Accelerate()
	c.Decelerate()
	if c.Divider().Velocity != 1 {
		t.Fatalf("velocity %d, expected 1", c.Divider().Velocity)
	}

	c.Tick()
	c.Randomize(Left)
	if c.Pixels(Left).Generation() != 0 || c.Pixels(Right).Generation() != 1 {
		t.Fatal("Randomize must only reset the chosen side")
	}
	c.Resynthesize()
	if c.Luma(Right).Generation() != 0 {
		t.Fatal("Resynthesize must install new rules on every automaton")
	}
	if c.Swaps() != 0 {
		t.Fatal("commands must not count as divider wraps")
	}
}
