package compositor

// State describes where the divider sits.
type State uint8

const (
	Idle State = iota
	AtLeftEdge
	AtRightEdge
)

func (s State) String() string {
	switch s {
	case AtLeftEdge:
		return "at-left-edge"
	case AtRightEdge:
		return "at-right-edge"
	default:
		return "idle"
	}
}

// Edge reports which edge, if any, an Advance wrapped at.
type Edge uint8

const (
	EdgeNone Edge = iota
	// EdgeRight means the divider moved right onto the width and restarted
	// at column 0.
	EdgeRight
	// EdgeLeft means the divider moved left onto column 0 and restarted at
	// the width.
	EdgeLeft
)

// Divider is the moving column boundary between the left and right
// automaton. Index is always within [0, Width].
type Divider struct {
	Index    int
	Velocity int
	Width    int
}

// Advance moves the divider by its velocity and clamps it into [0, Width].
// Reaching the edge it moves toward resets it to the opposite edge and
// reports which edge was hit.
func (d *Divider) Advance() Edge {
	d.Index = min(max(d.Index+d.Velocity, 0), d.Width)
	switch {
	case d.Velocity > 0 && d.Index == d.Width:
		d.Index = 0
		return EdgeRight
	case d.Velocity < 0 && d.Index == 0:
		d.Index = d.Width
		return EdgeLeft
	}
	return EdgeNone
}

// Accelerate adds one column per tick to the velocity.
func (d *Divider) Accelerate() { d.Velocity++ }

// Decelerate removes one column per tick from the velocity.
func (d *Divider) Decelerate() { d.Velocity-- }

// State classifies the current index.
func (d Divider) State() State {
	switch d.Index {
	case 0:
		return AtLeftEdge
	case d.Width:
		return AtRightEdge
	default:
		return Idle
	}
}
