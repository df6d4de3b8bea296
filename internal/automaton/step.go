// Package automaton applies rules to grids.
package automaton

import (
	"fmt"

	"split-ca/internal/core"
	"split-ca/internal/rules"
)

// Step computes the next generation of src under r into a new grid.
func Step(src *core.Grid, r rules.Rule) *core.Grid {
	dst := core.NewGrid(src.Width(), src.Height())
	StepInto(dst, src, r)
	return dst
}

// StepInto writes the next generation of src under r into dst. Every cell is
// computed from src alone, so dst must not alias src. Offsets falling outside
// the grid contribute nothing: border cells have a smaller neighborhood.
func StepInto(dst, src *core.Grid, r rules.Rule) {
	if dst == src {
		panic("automaton: step destination aliases source")
	}
	if dst.Size() != src.Size() {
		panic(fmt.Sprintf("automaton: step %v into %v", src.Size(), dst.Size()))
	}
	w, h := src.Width(), src.Height()
	offsets := r.Kernel.Offsets()
	cur := src.Cells()
	nxt := dst.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for _, o := range offsets {
				nx, ny := x+o.DX, y+o.DY
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				sum += r.CountNeighbor(cur[ny*w+nx], o.Weight)
			}
			idx := y*w + x
			nxt[idx] = r.NextState(cur[idx], sum)
		}
	}
}

// Contributors returns how many kernel offsets around (x, y) fall inside
// a grid of the given size.
func Contributors(size core.Size, k rules.Kernel, x, y int) int {
	n := 0
	for _, o := range k.Offsets() {
		nx, ny := x+o.DX, y+o.DY
		if nx >= 0 && ny >= 0 && nx < size.W && ny < size.H {
			n++
		}
	}
	return n
}
