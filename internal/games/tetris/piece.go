package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// PieceType identifies one of the seven tetromino shapes.
type PieceType int

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceCount is the number of shapes in the catalog.
const PieceCount = 7

// shape is a catalog entry. The pivot is stored in half-cell units
// (doubled) so rotation math never leaves the integers.
type shape struct {
	name    string
	offsets [4]core.Point
	pivot2  core.Point
	color   core.Color
}

var catalog = [PieceCount]shape{
	PieceI: {"I", [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, core.Pt(4, 2), core.ColorCyan},
	PieceO: {"O", [4]core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}, core.Pt(2, 2), core.ColorYellow},
	PieceT: {"T", [4]core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, core.Pt(3, 3), core.ColorPurple},
	PieceS: {"S", [4]core.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}}, core.Pt(3, 3), core.ColorGreen},
	PieceZ: {"Z", [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}, core.Pt(3, 3), core.ColorRed},
	PieceJ: {"J", [4]core.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}}, core.Pt(3, 3), core.ColorBlue},
	PieceL: {"L", [4]core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, core.Pt(3, 3), core.ColorOrange},
}

// AllPieces lists every piece type in catalog order.
func AllPieces() []PieceType {
	return []PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}
}

// Valid reports whether t is a catalog entry.
func (t PieceType) Valid() bool {
	return t >= 0 && t < PieceCount
}

func (t PieceType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PieceType(%d)", int(t))
	}
	return catalog[t].name
}

// Color returns the tile color used for the shape.
func (t PieceType) Color() core.Color {
	if !t.Valid() {
		return core.ColorDefault
	}
	return catalog[t].color
}

// BaseOffsets returns a fresh copy of the spawn-orientation offsets.
func (t PieceType) BaseOffsets() []core.Point {
	base := catalog[t].offsets
	out := make([]core.Point, len(base))
	copy(out, base[:])
	return out
}

// Pivot returns the rotation center in half-cell units: a pivot of
// (1.5, 1.5) is reported as (3, 3).
func (t PieceType) Pivot() core.Point {
	return catalog[t].pivot2
}

// ActivePiece is the falling piece. Offsets are owned by the piece and
// never alias the catalog.
type ActivePiece struct {
	Type    PieceType
	Anchor  core.Point
	Offsets []core.Point
}

// NewPiece creates a piece of type t at anchor in spawn orientation.
func NewPiece(t PieceType, anchor core.Point) ActivePiece {
	return ActivePiece{
		Type:    t,
		Anchor:  anchor,
		Offsets: t.BaseOffsets(),
	}
}

// Cells returns the board cells covered by the piece.
func (p ActivePiece) Cells() []core.Point {
	cells := make([]core.Point, len(p.Offsets))
	for i, off := range p.Offsets {
		cells[i] = p.Anchor.Add(off)
	}
	return cells
}

// Clone returns a deep copy of the piece.
func (p ActivePiece) Clone() ActivePiece {
	offsets := make([]core.Point, len(p.Offsets))
	copy(offsets, p.Offsets)
	return ActivePiece{Type: p.Type, Anchor: p.Anchor, Offsets: offsets}
}

// Moved returns a copy of the piece shifted by (dx, dy).
func (p ActivePiece) Moved(dx, dy int) ActivePiece {
	q := p.Clone()
	q.Anchor = q.Anchor.Add(core.Pt(dx, dy))
	return q
}

// Rotated returns a copy of the piece with its offsets turned 90 degrees.
func (p ActivePiece) Rotated(clockwise bool) ActivePiece {
	return ActivePiece{
		Type:    p.Type,
		Anchor:  p.Anchor,
		Offsets: Rotate(p.Type, p.Offsets, clockwise),
	}
}
