package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ClearRowDuration is how long the row wipe runs before the stack scrolls.
const ClearRowDuration = 200 * time.Millisecond

// Surface is a Renderer backed by a grid of colored tiles, one per board
// cell. Terminal and desktop shells paint it each frame.
type Surface struct {
	cols  int
	rows  int
	tiles [][]core.Color
	wipe  core.Color
}

// NewSurface allocates a blank surface for a cols x rows board.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{cols: cols, rows: rows, wipe: core.ColorWhite}
	s.tiles = make([][]core.Color, rows)
	for y := range s.tiles {
		s.tiles[y] = make([]core.Color, cols)
	}
	return s
}

// Columns returns the surface width in tiles.
func (s *Surface) Columns() int { return s.cols }

// Rows returns the surface height in tiles.
func (s *Surface) Rows() int { return s.rows }

// Tile returns the color at (col, row). ColorDefault means empty.
func (s *Surface) Tile(col, row int) core.Color {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return core.ColorDefault
	}
	return s.tiles[row][col]
}

func (s *Surface) set(col, row int, c core.Color) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return
	}
	s.tiles[row][col] = c
}

// DrawBackground blanks every tile.
func (s *Surface) DrawBackground() {
	for _, row := range s.tiles {
		clear(row)
	}
}

// DrawPiece paints or erases the cells of p.
func (s *Surface) DrawPiece(p ActivePiece, erase bool) {
	c := p.Type.Color()
	if erase {
		c = core.ColorDefault
	}
	for _, cell := range p.Cells() {
		s.set(cell.X, cell.Y, c)
	}
}

// PlayClearRow grows a wipe from the middle of row out to both edges, then
// scrolls everything above the row down by one and blanks the top row.
func (s *Surface) PlayClearRow(row int) Animation {
	return &rowWipe{s: s, row: row, d: ClearRowDuration}
}

// PlayHardDropDescent redraws p one row lower as time advances until it
// reaches targetRow.
func (s *Surface) PlayHardDropDescent(p ActivePiece, targetRow int, d time.Duration) Animation {
	return &descent{s: s, piece: p.Clone(), origin: p.Anchor.Y, target: targetRow, d: d}
}

type rowWipe struct {
	clock
	s   *Surface
	row int
	d   time.Duration
}

func (a *rowWipe) Advance(now time.Time) bool {
	elapsed := a.clock.elapsed(now)
	remaining := max(a.d-elapsed, 0)
	offset := int(float64(remaining) / float64(a.d) * float64(a.s.cols) / 2)
	for x := offset; x < a.s.cols-offset; x++ {
		a.s.set(x, a.row, a.s.wipe)
	}
	if elapsed < a.d {
		return false
	}
	a.s.scrollDown(a.row)
	return true
}

// scrollDown moves rows [0, row) down by one and blanks row 0.
func (s *Surface) scrollDown(row int) {
	if row < 0 || row >= s.rows {
		return
	}
	removed := s.tiles[row]
	copy(s.tiles[1:row+1], s.tiles[:row])
	clear(removed)
	s.tiles[0] = removed
}

type descent struct {
	clock
	s      *Surface
	piece  ActivePiece
	origin int
	target int
	d      time.Duration
}

func (a *descent) Advance(now time.Time) bool {
	elapsed := a.clock.elapsed(now)
	y := a.target
	if elapsed < a.d && a.d > 0 {
		y = a.origin + int(float64(elapsed)/float64(a.d)*float64(a.target-a.origin))
	}
	a.s.DrawPiece(a.piece, true)
	a.piece.Anchor.Y = y
	a.s.DrawPiece(a.piece, false)
	return elapsed >= a.d
}
