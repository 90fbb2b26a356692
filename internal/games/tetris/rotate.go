package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Rotate turns offsets 90 degrees about the pivot of t and returns the
// result as a new slice.
//
// Clockwise shifts each offset by (0, +1) before mapping (x, y) to (-y, x)
// around the pivot; counter-clockwise shifts by (+1, 0) and maps (x, y) to
// (y, -x). The two directions are exact inverses of each other.
func Rotate(t PieceType, offsets []core.Point, clockwise bool) []core.Point {
	c := t.Pivot()
	out := make([]core.Point, len(offsets))
	for i, off := range offsets {
		// Doubled coordinates.
		x, y := 2*off.X, 2*off.Y
		var rx, ry int
		if clockwise {
			dx, dy := x-c.X, y+2-c.Y
			rx, ry = c.X-dy, c.Y+dx
		} else {
			dx, dy := x+2-c.X, y-c.Y
			rx, ry = c.X+dy, c.Y-dx
		}
		out[i] = core.Pt(halve(rx), halve(ry))
	}
	return out
}

func halve(v int) int {
	if v%2 != 0 {
		panic(fmt.Sprintf("tetris: rotation produced a half-cell offset (%d/2)", v))
	}
	return v / 2
}
