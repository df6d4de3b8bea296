// Package app runs the split-screen automaton against a display.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"split-ca/internal/compositor"
	"split-ca/internal/console"
	"split-ca/internal/core"
	"split-ca/internal/servicepoint"
)

// Sink receives composited frames.
type Sink interface {
	SendBitmap(pixels *core.Grid) error
	SendBrightness(levels *core.Grid) error
}

// Input yields pending user commands without blocking.
type Input interface {
	Poll() (console.Command, bool)
}

// App drives one compositor: every tick it steps, composites, sends the
// frame and then handles whatever commands arrived.
type App struct {
	comp  *compositor.Compositor
	sink  Sink
	input Input
	pacer *core.Pacer
	log   *slog.Logger

	levels *core.Grid
	ticks  uint64
}

// New wires an App together.
func New(comp *compositor.Compositor, sink Sink, input Input, pacer *core.Pacer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	tiles := comp.Frame().Luma.Size()
	return &App{
		comp:   comp,
		sink:   sink,
		input:  input,
		pacer:  pacer,
		log:    logger,
		levels: core.NewGrid(tiles.W, tiles.H),
	}
}

// Ticks returns how many ticks have completed.
func (a *App) Ticks() uint64 { return a.ticks }

// Run ticks until a Close command, a send failure or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("running", "tps", a.pacer.TPS())
	for {
		start := time.Now()
		more, err := a.Tick()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := a.pacer.Wait(ctx, start); err != nil {
			return err
		}
	}
}

// Tick runs one tick. It reports false once the user asked to close.
func (a *App) Tick() (bool, error) {
	frame := a.comp.Tick()
	if err := a.sink.SendBitmap(frame.Pixels); err != nil {
		return false, fmt.Errorf("app: send pixels: %w", err)
	}
	servicepoint.Levels(a.levels, frame.Luma)
	if err := a.sink.SendBrightness(a.levels); err != nil {
		return false, fmt.Errorf("app: send brightness: %w", err)
	}
	a.ticks++

	for {
		cmd, ok := a.input.Poll()
		if !ok {
			return true, nil
		}
		if !a.handle(cmd) {
			return false, nil
		}
	}
}

func (a *App) handle(cmd console.Command) bool {
	switch cmd {
	case console.Close:
		a.log.Warn("terminating")
		return false
	case console.ShowHelp:
		for _, l := range console.Help {
			a.log.Info(l)
		}
	case console.RandomizeLeft:
		a.comp.Randomize(compositor.Left)
	case console.RandomizeRight:
		a.comp.Randomize(compositor.Right)
	case console.RandomizeLeftLuma:
		a.comp.RandomizeLuma(compositor.Left)
	case console.RandomizeRightLuma:
		a.comp.RandomizeLuma(compositor.Right)
	case console.AccelerateDivider:
		a.comp.Accelerate()
	case console.DecelerateDivider:
		a.comp.Decelerate()
	case console.Swap:
		a.comp.Swap()
	case console.Resynthesize:
		a.comp.Resynthesize()
	case console.SpeedUp:
		a.pacer.Faster()
		a.log.Info("increased simulation speed", "tps", a.pacer.TPS())
	case console.SpeedDown:
		a.pacer.Slower()
		a.log.Info("decreased simulation speed", "tps", a.pacer.TPS())
	default:
		a.log.Debug("unhandled command", "command", cmd.String())
	}
	return true
}
