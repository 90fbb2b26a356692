package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

var t0 = time.Unix(1_700_000_000, 0)

func at(d time.Duration) time.Time { return t0.Add(d) }

// sequenceSource replays a fixed list of piece types at a fixed column.
type sequenceSource struct {
	types []PieceType
	col   int
	i     int
}

func (s *sequenceSource) Next() PieceType {
	t := s.types[s.i%len(s.types)]
	s.i++
	return t
}

func (s *sequenceSource) Column(n int) int {
	return min(s.col, n-1)
}

// stepAnimation finishes after a fixed number of Advance calls.
type stepAnimation struct{ left int }

func (a *stepAnimation) Advance(time.Time) bool {
	a.left--
	return a.left <= 0
}

type dropCall struct {
	from, target int
	d            time.Duration
}

// recordingRenderer records animation requests. Its animations take
// steps ticks to finish.
type recordingRenderer struct {
	steps   int
	cleared []int
	drops   []dropCall
	erased  int
	drawn   int
}

func (r *recordingRenderer) DrawBackground() {}

func (r *recordingRenderer) DrawPiece(_ ActivePiece, erase bool) {
	if erase {
		r.erased++
	} else {
		r.drawn++
	}
}

func (r *recordingRenderer) PlayClearRow(row int) Animation {
	r.cleared = append(r.cleared, row)
	return &stepAnimation{left: r.steps}
}

func (r *recordingRenderer) PlayHardDropDescent(p ActivePiece, target int, d time.Duration) Animation {
	r.drops = append(r.drops, dropCall{from: p.Anchor.Y, target: target, d: d})
	return &stepAnimation{left: r.steps}
}

func newTestSession(t *testing.T, types []PieceType, col int, opts ...Option) *Session {
	t.Helper()
	all := append([]Option{WithPieceSource(&sequenceSource{types: types, col: col})}, opts...)
	s := NewSession(all...)
	require.NoError(t, s.Start(t0))
	return s
}

func fillRow(b *Board, row int) {
	for x := 0; x < b.Columns(); x++ {
		b.Lock(core.Pt(x, row))
	}
}

func activePiece(t *testing.T, s *Session) ActivePiece {
	t.Helper()
	p, ok := s.Active()
	require.True(t, ok, "expected an active piece")
	return p
}
