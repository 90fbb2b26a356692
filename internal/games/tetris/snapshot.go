package tetris

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Snapshot captures the session state for determinism checks and debugging.
type Snapshot struct {
	Tick   uint64
	Phase  Phase
	Score  int
	Lines  int
	Piece  string       // type of the active piece, empty when none
	Anchor core.Point   // anchor of the active piece
	Cells  []core.Point // cells of the active piece
	Board  []string     // one string per row, '#' for filled cells
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  s.tick,
		Phase: s.phase,
		Score: s.score,
		Lines: s.lines,
	}
	if s.active != nil {
		snap.Piece = s.active.Type.String()
		snap.Anchor = s.active.Anchor
		snap.Cells = s.active.Cells()
	}
	if s.board != nil {
		snap.Board = s.board.Strings()
	}
	return snap
}

// Strings renders the board as rows of '#' and '.'.
func (b *Board) Strings() []string {
	out := make([]string, b.rows)
	var sb strings.Builder
	for y, row := range b.cells {
		sb.Reset()
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		out[y] = sb.String()
	}
	return out
}
