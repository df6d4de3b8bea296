package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the minimal contract of anything that steps a grid of cells.
type Sim interface {
	Name() string
	Size() Size
	Step()
	Cells() []uint8
}
