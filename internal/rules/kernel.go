package rules

import (
	"fmt"
	"strings"
)

// Shape identifies one of the built-in neighborhoods.
type Shape uint8

const (
	ShapeCustom Shape = iota
	ShapeMoore
	ShapeVonNeumann
	ShapeDiagonal
)

func (s Shape) String() string {
	switch s {
	case ShapeMoore:
		return "moore"
	case ShapeVonNeumann:
		return "vonneumann"
	case ShapeDiagonal:
		return "diagonal"
	default:
		return "custom"
	}
}

// Kernel is a square, odd-sized mask of per-offset neighbor weights. The
// center weight is always zero. Kernels are immutable after construction.
type Kernel struct {
	shape   Shape
	size    int
	weights []uint8
}

// NewKernel builds a kernel from row-major weights. It panics if size is not
// odd and at least 3, or if len(weights) != size*size.
func NewKernel(size int, weights []uint8) Kernel {
	if size < 3 || size%2 == 0 {
		panic(fmt.Sprintf("rules: kernel size %d must be odd and >= 3", size))
	}
	if len(weights) != size*size {
		panic(fmt.Sprintf("rules: kernel of size %d needs %d weights, got %d", size, size*size, len(weights)))
	}
	w := make([]uint8, len(weights))
	copy(w, weights)
	w[len(w)/2] = 0
	return Kernel{shape: ShapeCustom, size: size, weights: w}
}

func builtin(shape Shape, weights []uint8) Kernel {
	k := NewKernel(3, weights)
	k.shape = shape
	return k
}

// Moore is the eight-cell neighborhood.
func Moore() Kernel {
	return builtin(ShapeMoore, []uint8{
		1, 1, 1,
		1, 0, 1,
		1, 1, 1,
	})
}

// VonNeumann is the four orthogonal neighbors.
func VonNeumann() Kernel {
	return builtin(ShapeVonNeumann, []uint8{
		0, 1, 0,
		1, 0, 1,
		0, 1, 0,
	})
}

// Diagonal is the four diagonal neighbors.
func Diagonal() Kernel {
	return builtin(ShapeDiagonal, []uint8{
		1, 0, 1,
		0, 0, 0,
		1, 0, 1,
	})
}

// Shape returns the built-in neighborhood this kernel was made from.
func (k Kernel) Shape() Shape { return k.shape }

// Size returns the side length.
func (k Kernel) Size() int { return k.size }

// Radius returns the distance from the center to an edge.
func (k Kernel) Radius() int { return k.size / 2 }

// Weight returns the weight at offset (dx, dy) from the center.
func (k Kernel) Weight(dx, dy int) uint8 {
	r := k.Radius()
	return k.weights[(dy+r)*k.size+dx+r]
}

// Neighbors counts offsets with a non-zero weight.
func (k Kernel) Neighbors() int {
	n := 0
	for _, w := range k.weights {
		if w != 0 {
			n++
		}
	}
	return n
}

// MaxSum returns the largest weighted count a cell can see.
func (k Kernel) MaxSum() int {
	n := 0
	for _, w := range k.weights {
		n += int(w)
	}
	return n
}

// Empty reports whether the kernel has no neighbors at all.
func (k Kernel) Empty() bool { return k.size == 0 || k.Neighbors() == 0 }

// Offset is a neighbor position relative to the center along with its weight.
type Offset struct {
	DX, DY int
	Weight uint8
}

// Offsets lists every non-zero offset in row-major order.
func (k Kernel) Offsets() []Offset {
	r := k.Radius()
	var out []Offset
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if w := k.Weight(dx, dy); w != 0 {
				out = append(out, Offset{DX: dx, DY: dy, Weight: w})
			}
		}
	}
	return out
}

func (k Kernel) String() string {
	if k.shape != ShapeCustom {
		return k.shape.String()
	}
	var b strings.Builder
	for i, w := range k.weights {
		if i > 0 && i%k.size == 0 {
			b.WriteByte('/')
		}
		fmt.Fprintf(&b, "%d", w)
	}
	return b.String()
}
