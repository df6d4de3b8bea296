package compositor

import "testing"

func TestDividerWrapsOnceAfterWidthTicks(t *testing.T) {
	const width = 10
	d := Divider{Velocity: 1, Width: width}
	wraps := 0
	for i := 1; i <= width; i++ {
		if d.Advance() == EdgeRight {
			wraps++
			if i != width {
				t.Fatalf("wrapped early at tick %d", i)
			}
		}
	}
	if wraps != 1 {
		t.Fatalf("wrapped %d times, expected 1", wraps)
	}
	if d.Index != 0 {
		t.Fatalf("index %d after wrap, expected 0", d.Index)
	}
	if d.State() != AtLeftEdge {
		t.Fatalf("state %v, expected %v", d.State(), AtLeftEdge)
	}
}

func TestDividerWrapsLeft(t *testing.T) {
	d := Divider{Index: 3, Velocity: -1, Width: 8}
	for i := 0; i < 2; i++ {
		if e := d.Advance(); e != EdgeNone {
			t.Fatalf("unexpected edge %v at index %d", e, d.Index)
		}
	}
	if e := d.Advance(); e != EdgeLeft {
		t.Fatalf("edge %v, expected EdgeLeft", e)
	}
	if d.Index != 8 || d.State() != AtRightEdge {
		t.Fatalf("index %d state %v, expected 8 at-right-edge", d.Index, d.State())
	}
}

func TestDividerClampsFastVelocity(t *testing.T) {
	d := Divider{Index: 7, Velocity: 5, Width: 10}
	if d.Advance() != EdgeRight || d.Index != 0 {
		t.Fatalf("overshoot must clamp to the width and wrap, index %d", d.Index)
	}
	d = Divider{Index: 2, Velocity: -5, Width: 10}
	if d.Advance() != EdgeLeft || d.Index != 10 {
		t.Fatalf("undershoot must clamp to 0 and wrap, index %d", d.Index)
	}
}

func TestDividerStationary(t *testing.T) {
	d := Divider{Index: 4, Width: 10}
	for i := 0; i < 20; i++ {
		if d.Advance() != EdgeNone {
			t.Fatal("zero velocity must never wrap")
		}
	}
	if d.Index != 4 || d.State() != Idle {
		t.Fatalf("index %d state %v", d.Index, d.State())
	}
	d.Accelerate()
	d.Accelerate()
	d.Decelerate()
	if d.Velocity != 1 {
		t.Fatalf("velocity %d, expected 1", d.Velocity)
	}
}
