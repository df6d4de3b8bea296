package compositor

import (
	"fmt"

	"split-ca/internal/core"
)

// Boundary is the value written on the divider column of either channel.
const Boundary = core.Alive

// Merge fills dst column by column: columns left of split come from left,
// columns right of it from right, and the split column itself is set to
// Boundary. A split outside [0, width) leaves no seam.
func Merge(dst, left, right *core.Grid, split int) {
	if dst.Size() != left.Size() || dst.Size() != right.Size() {
		panic(fmt.Sprintf("compositor: merge %v and %v into %v", left.Size(), right.Size(), dst.Size()))
	}
	w, h := dst.Width(), dst.Height()
	out, l, r := dst.Cells(), left.Cells(), right.Cells()
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			idx := row + x
			switch {
			case x == split:
				out[idx] = Boundary
			case x < split:
				out[idx] = l[idx]
			default:
				out[idx] = r[idx]
			}
		}
	}
}
