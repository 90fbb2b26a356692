package tetris

import (
	"errors"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// MinColumns is the narrowest board a session accepts; spawn columns are
// drawn from [0, cols-3).
const MinColumns = 4

// ErrInvalidDimensions is returned for boards that cannot host a game.
var ErrInvalidDimensions = errors.New("invalid board dimensions")

// Board is the occupancy grid. Row 0 is the top row.
type Board struct {
	cols  int
	rows  int
	cells [][]bool
}

// NewBoard creates an empty board with the given size.
func NewBoard(cols, rows int) (*Board, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrInvalidDimensions
	}
	b := &Board{cols: cols, rows: rows, cells: make([][]bool, rows)}
	for y := range b.cells {
		b.cells[y] = make([]bool, cols)
	}
	return b, nil
}

// Columns returns the board width.
func (b *Board) Columns() int { return b.cols }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// IsInside reports whether (col, row) lies on the board.
func (b *Board) IsInside(col, row int) bool {
	return col >= 0 && col < b.cols && row >= 0 && row < b.rows
}

// IsOccupied reports whether the cell is filled. The cell must be inside.
func (b *Board) IsOccupied(col, row int) bool {
	return b.cells[row][col]
}

// Fits reports whether every cell is inside the board and empty.
func (b *Board) Fits(cells []core.Point) bool {
	for _, c := range cells {
		if !b.IsInside(c.X, c.Y) || b.IsOccupied(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Lock marks cells as occupied. Cells outside the board are ignored.
func (b *Board) Lock(cells ...core.Point) {
	for _, c := range cells {
		if b.IsInside(c.X, c.Y) {
			b.cells[c.Y][c.X] = true
		}
	}
}

// IsRowFull reports whether every column of row is occupied.
func (b *Board) IsRowFull(row int) bool {
	for _, filled := range b.cells[row] {
		if !filled {
			return false
		}
	}
	return true
}

// FullRows returns the indices of full rows, top to bottom.
func (b *Board) FullRows() []int {
	var full []int
	for y := 0; y < b.rows; y++ {
		if b.IsRowFull(y) {
			full = append(full, y)
		}
	}
	return full
}

// ClearRow removes row and inserts an empty row at the top. Rows above
// the removed one move down by one; rows below keep their index.
func (b *Board) ClearRow(row int) {
	if row < 0 || row >= b.rows {
		return
	}
	removed := b.cells[row]
	copy(b.cells[1:row+1], b.cells[:row])
	clear(removed)
	b.cells[0] = removed
}

// Row returns a copy of the given row.
func (b *Board) Row(row int) []bool {
	out := make([]bool, b.cols)
	copy(out, b.cells[row])
	return out
}

// Occupied lists all filled cells in row-major order.
func (b *Board) Occupied() []core.Point {
	var pts []core.Point
	for y, row := range b.cells {
		for x, filled := range row {
			if filled {
				pts = append(pts, core.Pt(x, y))
			}
		}
	}
	return pts
}

// Reset empties the board.
func (b *Board) Reset() {
	for _, row := range b.cells {
		clear(row)
	}
}
