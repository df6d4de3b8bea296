package core

import (
	"context"
	"time"
)

// MinTickDuration is the shortest target duration a Pacer accepts.
const MinTickDuration = time.Millisecond

// Pacer holds a target tick duration and sleeps away whatever part of it a
// tick did not use.
type Pacer struct {
	target time.Duration
}

// NewPacer constructs a Pacer targeting the given TPS.
func NewPacer(tps int) *Pacer {
	p := &Pacer{}
	p.SetTPS(tps)
	return p
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (p *Pacer) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	p.SetTarget(time.Second / time.Duration(tps))
}

// SetTarget sets the target tick duration, clamped to MinTickDuration.
func (p *Pacer) SetTarget(d time.Duration) {
	if d < MinTickDuration {
		d = MinTickDuration
	}
	p.target = d
}

// Target returns the current target tick duration.
func (p *Pacer) Target() time.Duration { return p.target }

// TPS returns the tick rate implied by the target duration.
func (p *Pacer) TPS() float64 { return float64(time.Second) / float64(p.target) }

// Faster shortens the target by one millisecond.
func (p *Pacer) Faster() { p.SetTarget(p.target - time.Millisecond) }

// Slower lengthens the target by one millisecond.
func (p *Pacer) Slower() { p.SetTarget(p.target + time.Millisecond) }

// Remaining returns how long to wait for a tick that began at start.
func (p *Pacer) Remaining(start, now time.Time) time.Duration {
	elapsed := now.Sub(start)
	if elapsed >= p.target {
		return 0
	}
	return p.target - elapsed
}

// Wait blocks until the tick that began at start has used its target
// duration, or ctx is done.
func (p *Pacer) Wait(ctx context.Context, start time.Time) error {
	d := p.Remaining(start, time.Now())
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
