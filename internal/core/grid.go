package core

import "fmt"

const (
	// Dead is the value of an empty cell.
	Dead uint8 = 0
	// Alive is the saturated value binary rules write for a live cell.
	Alive uint8 = 255
	// Midpoint splits the byte range into dead and alive halves.
	Midpoint uint8 = 128
)

// IsAlive reports whether v reads as alive on a two-level channel.
func IsAlive(v uint8) bool { return v >= Midpoint }

// Grid stores a 2D grid of byte-sized cell values in row-major order.
// Dimensions are fixed for the lifetime of the grid.
type Grid struct {
	w, h int
	data []uint8
}

// NewGrid allocates a zeroed grid. Non-positive dimensions panic.
func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", w, h))
	}
	return &Grid{w: w, h: h, data: make([]uint8, w*h)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.w, H: g.h} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.w + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// Get returns the value at (x, y). Out-of-range coordinates panic.
func (g *Grid) Get(x, y int) uint8 {
	g.check(x, y)
	return g.data[g.Index(x, y)]
}

// Set stores v at (x, y). Out-of-range coordinates panic.
func (g *Grid) Set(x, y int, v uint8) {
	g.check(x, y)
	g.data[g.Index(x, y)] = v
}

func (g *Grid) check(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("core: cell (%d,%d) outside %dx%d grid", x, y, g.w, g.h))
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{w: g.w, h: g.h, data: make([]uint8, len(g.data))}
	copy(c.data, g.data)
	return c
}

// CopyFrom overwrites g with the contents of src. Sizes must match.
func (g *Grid) CopyFrom(src *Grid) {
	if g.w != src.w || g.h != src.h {
		panic(fmt.Sprintf("core: copy %dx%d into %dx%d", src.w, src.h, g.w, g.h))
	}
	copy(g.data, src.data)
}

// Fill sets every cell to v.
func (g *Grid) Fill(v uint8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() { g.Fill(Dead) }

// Population counts the cells that read as alive.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.data {
		if IsAlive(v) {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}
