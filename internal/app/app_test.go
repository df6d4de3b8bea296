package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"split-ca/internal/compositor"
	"split-ca/internal/console"
	"split-ca/internal/core"
	"split-ca/internal/rules"
	"split-ca/internal/servicepoint"
)

type recordingSink struct {
	bitmaps     int
	brightness  int
	lastLevels  []uint8
	failBitmaps error
}

func (s *recordingSink) SendBitmap(g *core.Grid) error {
	if s.failBitmaps != nil {
		return s.failBitmaps
	}
	s.bitmaps++
	return nil
}

func (s *recordingSink) SendBrightness(g *core.Grid) error {
	s.brightness++
	s.lastLevels = append(s.lastLevels[:0], g.Cells()...)
	return nil
}

type scriptedInput struct {
	pending []console.Command
}

func (in *scriptedInput) Poll() (console.Command, bool) {
	if len(in.pending) == 0 {
		return 0, false
	}
	cmd := in.pending[0]
	in.pending = in.pending[1:]
	return cmd, true
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, sink Sink, input Input) (*App, *compositor.Compositor, *core.Pacer) {
	t.Helper()
	cfg := NewConfig()
	compCfg, err := cfg.Compositor(rules.NewSynthesizer(core.NewRNG(1)))
	if err != nil {
		t.Fatal(err)
	}
	comp, err := compositor.New(compCfg, core.NewRNG(2), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	pacer := core.NewPacer(1000)
	return New(comp, sink, input, pacer, quietLogger()), comp, pacer
}

func TestTickSendsBothFrames(t *testing.T) {
	sink := &recordingSink{}
	a, _, _ := newTestApp(t, sink, &scriptedInput{})
	more, err := a.Tick()
	if err != nil || !more {
		t.Fatalf("Tick() = %v, %v", more, err)
	}
	if sink.bitmaps != 1 || sink.brightness != 1 {
		t.Fatalf("sent %d bitmaps and %d brightness maps", sink.bitmaps, sink.brightness)
	}
	if len(sink.lastLevels) != servicepoint.TileWidth*servicepoint.TileHeight {
		t.Fatalf("brightness map has %d tiles", len(sink.lastLevels))
	}
	for _, v := range sink.lastLevels {
		if v > servicepoint.MaxBrightness {
			t.Fatalf("level %d above display maximum", v)
		}
	}
}

func TestSendFailureIsFatal(t *testing.T) {
	boom := errors.New("network down")
	a, _, _ := newTestApp(t, &recordingSink{failBitmaps: boom}, &scriptedInput{})
	if err := a.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run() = %v, expected the send error", err)
	}
	if a.Ticks() != 0 {
		t.Fatal("failed tick must not count")
	}
}

func TestCommandsApplyAfterFrame(t *testing.T) {
	input := &scriptedInput{pending: []console.Command{
		console.AccelerateDivider,
		console.AccelerateDivider,
		console.SpeedDown,
		console.ShowHelp,
		console.Swap,
	}}
	a, comp, pacer := newTestApp(t, &recordingSink{}, input)
	before := pacer.Target()
	left := comp.Pixels(compositor.Left)

	if more, err := a.Tick(); err != nil || !more {
		t.Fatalf("Tick() = %v, %v", more, err)
	}
	if v := comp.Divider().Velocity; v != 3 {
		t.Fatalf("velocity %d, expected 3", v)
	}
	if pacer.Target() != before+time.Millisecond {
		t.Fatalf("target %v, expected %v", pacer.Target(), before+time.Millisecond)
	}
	if comp.Pixels(compositor.Right) != left {
		t.Fatal("swap command must exchange sides")
	}
}

func TestCloseStopsRun(t *testing.T) {
	sink := &recordingSink{}
	input := &scriptedInput{pending: []console.Command{console.RandomizeLeft, console.Close, console.RandomizeRight}}
	a, _, _ := newTestApp(t, sink, input)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if a.Ticks() != 1 || sink.bitmaps != 1 {
		t.Fatalf("ticks %d bitmaps %d, expected 1", a.Ticks(), sink.bitmaps)
	}
	if len(input.pending) != 1 {
		t.Fatal("commands after Close must stay queued")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _, _ := newTestApp(t, &recordingSink{}, &scriptedInput{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v, expected deadline exceeded", err)
	}
	if a.Ticks() == 0 {
		t.Fatal("expected at least one tick before cancel")
	}
}
