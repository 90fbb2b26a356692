package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestStartRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{"too narrow", 3, 20},
		{"no rows", 10, 0},
		{"negative rows", 10, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(WithSize(tt.cols, tt.rows))
			assert.ErrorIs(t, s.Start(t0), ErrInvalidDimensions)
			assert.Equal(t, PhaseIdle, s.Phase())
		})
	}
}

func TestFirstTickSpawnsAndProbes(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 4)
	assert.Equal(t, PhaseSpawning, s.Phase())

	s.Tick(t0)

	assert.Equal(t, PhaseFalling, s.Phase())
	p := activePiece(t, s)
	assert.Equal(t, PieceT, p.Type)
	assert.Equal(t, core.Pt(4, 1), p.Anchor)
}

func TestSpawnColumnRange(t *testing.T) {
	src := &sequenceSource{types: []PieceType{PieceI}, col: 99}
	s := NewSession(WithPieceSource(src))
	require.NoError(t, s.Start(t0))
	s.Tick(t0)

	// Column(cols-3) clamps to the last allowed column.
	assert.Equal(t, 6, activePiece(t, s).Anchor.X)
}

func TestTapMovesTwoCells(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 4)
	s.Tick(t0)

	s.KeyDown(core.ActionLeft, t0)
	assert.Equal(t, 3, activePiece(t, s).Anchor.X)

	s.KeyUp(at(50 * time.Millisecond))
	assert.Equal(t, 2, activePiece(t, s).Anchor.X)

	// Released: no more repeats.
	s.Tick(at(300 * time.Millisecond))
	assert.Equal(t, 2, activePiece(t, s).Anchor.X)
}

func TestHeldKeyRepeats(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 2)
	s.Tick(t0)

	s.KeyDown(core.ActionRight, t0)
	assert.Equal(t, 3, activePiece(t, s).Anchor.X)

	s.Tick(at(100 * time.Millisecond))
	assert.Equal(t, 3, activePiece(t, s).Anchor.X, "repeat before interval")

	s.Tick(at(120 * time.Millisecond))
	assert.Equal(t, 4, activePiece(t, s).Anchor.X)

	s.Tick(at(240 * time.Millisecond))
	assert.Equal(t, 5, activePiece(t, s).Anchor.X)

	s.KeyUp(at(250 * time.Millisecond))
	assert.Equal(t, 6, activePiece(t, s).Anchor.X)
}

func TestTapDoesNotHold(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 4)
	s.Tick(t0)

	s.Tap(core.ActionLeft, t0)
	s.Tick(at(400 * time.Millisecond))
	s.KeyUp(at(450 * time.Millisecond))

	assert.Equal(t, 3, activePiece(t, s).Anchor.X)
}

func TestOneShotNotRepeatedOnKeyUp(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 4)
	s.Tick(t0)

	s.KeyDown(core.ActionPause, t0)
	assert.Equal(t, PhasePaused, s.Phase())

	// KeyUp must not re-apply a one-shot action.
	s.KeyUp(at(10 * time.Millisecond))
	assert.Equal(t, PhasePaused, s.Phase())
}

func TestGravityThenLock(t *testing.T) {
	timing := Timing{Gravity: 10 * time.Millisecond, Sticky: 30 * time.Millisecond, KeyRepeat: 120 * time.Millisecond}
	locked := 0
	s := newTestSession(t, []PieceType{PieceI}, 0,
		WithTiming(timing),
		WithHandler(HandlerFuncs{Lock: func(ActivePiece) { locked++ }}),
	)
	s.Tick(t0)

	for i := 1; i < 200 && s.Phase() == PhaseFalling; i++ {
		s.Tick(at(time.Duration(i) * 10 * time.Millisecond))
	}

	assert.Equal(t, PhaseSpawning, s.Phase())
	assert.Equal(t, 1, locked)
	_, ok := s.Active()
	assert.False(t, ok)
	assert.Equal(t, []core.Point{core.Pt(0, 19), core.Pt(1, 19), core.Pt(2, 19), core.Pt(3, 19)}, s.Board().Occupied())
}

func TestStickyGraceAllowsLastMove(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceO}, 0, WithSize(10, 4))
	s.Tick(t0) // O at rows 1-2

	s.Tick(at(500 * time.Millisecond)) // rows 2-3, grounded
	require.Equal(t, 2, activePiece(t, s).Anchor.Y)

	s.Tick(at(1000 * time.Millisecond)) // gravity fails, grace starts
	s.Tap(core.ActionRight, at(1100*time.Millisecond))
	s.Tick(at(1200 * time.Millisecond))

	assert.Equal(t, PhaseFalling, s.Phase())
	assert.Equal(t, 1, activePiece(t, s).Anchor.X)

	s.Tick(at(1300 * time.Millisecond))
	assert.Equal(t, PhaseSpawning, s.Phase())
}

func TestStickySurvivesSlidingOffLedge(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceO}, 0, WithSize(10, 6))
	s.Board().Lock(core.Pt(0, 3))
	s.Tick(t0) // O at rows 1-2, resting on the ledge

	s.Tick(at(500 * time.Millisecond)) // gravity fails, grace starts
	s.Tap(core.ActionRight, at(600*time.Millisecond))
	require.Equal(t, 1, activePiece(t, s).Anchor.X)

	for _, ms := range []int{1000, 1500, 2000} {
		s.Tick(at(time.Duration(ms) * time.Millisecond))
		require.Equal(t, PhaseFalling, s.Phase(), "at %dms", ms)
	}
	require.Equal(t, 4, activePiece(t, s).Anchor.Y)

	// The grace period started on the ledge and has long expired.
	s.Tick(at(2500 * time.Millisecond))
	assert.Equal(t, PhaseSpawning, s.Phase())
	assert.True(t, s.Board().IsOccupied(1, 5))
	assert.True(t, s.Board().IsOccupied(2, 5))
}

func TestStartRestoresGravity(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 0)
	s.SetGravity(100 * time.Millisecond)
	require.Equal(t, 100*time.Millisecond, s.Gravity())

	s.Tap(core.ActionStart, at(time.Second))
	assert.Equal(t, DefaultTiming().Gravity, s.Gravity())
}

func TestStartKeyReportsBadDimensions(t *testing.T) {
	s := NewSession(WithSize(3, 20))
	s.Tap(core.ActionStart, t0)

	assert.ErrorIs(t, s.Err(), ErrInvalidDimensions)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestLineClearRunsRowsInOrder(t *testing.T) {
	rec := &recordingRenderer{steps: 2}
	var clearedRows []int
	var total int
	s := newTestSession(t, []PieceType{PieceI}, 0,
		WithSize(4, 6),
		WithTiming(Timing{Gravity: 10 * time.Millisecond, KeyRepeat: 120 * time.Millisecond}),
		WithRenderer(rec),
		WithHandler(HandlerFuncs{LinesCleared: func(rows []int, n int) {
			clearedRows = append([]int(nil), rows...)
			total = n
		}}),
	)
	fillRow(s.Board(), 4)
	fillRow(s.Board(), 5)

	s.Tick(t0)                        // spawn at row 1
	s.Tick(at(10 * time.Millisecond)) // row 2
	s.Tick(at(20 * time.Millisecond)) // row 3
	s.Tick(at(30 * time.Millisecond)) // grounded, no grace: lock
	assert.Equal(t, PhaseLineClear, s.Phase())
	assert.Equal(t, []int{3}, rec.cleared)

	s.Tick(at(40 * time.Millisecond))
	assert.Equal(t, []int{3, 4}, rec.cleared)

	// Input is ignored while rows are clearing.
	s.KeyDown(core.ActionLeft, at(45*time.Millisecond))
	s.KeyUp(at(46 * time.Millisecond))

	s.Tick(at(50 * time.Millisecond))
	assert.Equal(t, []int{3, 4, 5}, rec.cleared)
	assert.Equal(t, PhaseLineClear, s.Phase())
	assert.Zero(t, s.Lines())

	s.Tick(at(60 * time.Millisecond))
	assert.Equal(t, PhaseSpawning, s.Phase())
	assert.Equal(t, 3, s.Lines())
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, []int{3, 4, 5}, clearedRows)
	assert.Equal(t, 3, total)
	assert.Empty(t, s.Board().Occupied())
}

func TestScoreFunc(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceI}, 0,
		WithSize(4, 4),
		WithTiming(Timing{Gravity: 10 * time.Millisecond, KeyRepeat: 120 * time.Millisecond}),
		WithScoreFunc(func(rows int) int { return rows * 100 }),
	)
	s.Tick(t0)
	for i := 1; i < 10 && s.Phase() == PhaseFalling; i++ {
		s.Tick(at(time.Duration(i) * 10 * time.Millisecond))
	}

	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 1, s.Lines())
}

func TestGameOverWhenFirstStepBlocked(t *testing.T) {
	for _, pt := range AllPieces() {
		t.Run(pt.String(), func(t *testing.T) {
			rec := &recordingRenderer{steps: 1}
			overScore := -1
			s := newTestSession(t, []PieceType{pt}, 3,
				WithRenderer(rec),
				WithHandler(HandlerFuncs{GameOver: func(score int) { overScore = score }}),
			)
			fillRow(s.Board(), 1)
			before := s.Board().Strings()

			s.Tick(t0)

			assert.Equal(t, PhaseGameOver, s.Phase())
			assert.Equal(t, 0, overScore)
			assert.Equal(t, 1, rec.drawn, "rolled-back piece is drawn")
			_, ok := s.Active()
			assert.False(t, ok)

			s.KeyDown(core.ActionLeft, at(10*time.Millisecond))
			s.KeyUp(at(20 * time.Millisecond))
			s.Tick(at(5 * time.Second))

			assert.Equal(t, PhaseGameOver, s.Phase())
			assert.Equal(t, before, s.Board().Strings())
		})
	}
}

func TestStartKeyRestartsAfterGameOver(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceO}, 0)
	fillRow(s.Board(), 1)
	s.Tick(t0)
	require.Equal(t, PhaseGameOver, s.Phase())

	s.KeyDown(core.ActionStart, at(time.Second))

	assert.Equal(t, PhaseSpawning, s.Phase())
	assert.Empty(t, s.Board().Occupied())
	s.Tick(at(time.Second))
	assert.Equal(t, PhaseFalling, s.Phase())
}

func TestPauseSuspendsGravity(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 4)
	s.Tick(t0)

	s.KeyDown(core.ActionPause, t0)
	require.Equal(t, PhasePaused, s.Phase())

	s.Tick(at(2 * time.Second))
	s.Tap(core.ActionLeft, at(2*time.Second))
	assert.Equal(t, core.Pt(4, 1), activePiece(t, s).Anchor)

	s.Tap(core.ActionContinue, at(2*time.Second))
	assert.Equal(t, PhaseFalling, s.Phase())

	s.Tick(at(2400 * time.Millisecond))
	assert.Equal(t, 1, activePiece(t, s).Anchor.Y, "gravity timer restarts on continue")

	s.Tick(at(2500 * time.Millisecond))
	assert.Equal(t, 2, activePiece(t, s).Anchor.Y)
}

func TestContinueOnlyResumesPause(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceO}, 0)
	fillRow(s.Board(), 1)
	s.Tick(t0)

	s.Tap(core.ActionContinue, at(time.Second))
	assert.Equal(t, PhaseGameOver, s.Phase())
}

func TestHardDropHoldsRowUntilAnimationEnds(t *testing.T) {
	rec := &recordingRenderer{steps: 3}
	s := newTestSession(t, []PieceType{PieceI}, 3, WithRenderer(rec))
	s.Tick(t0)
	p := activePiece(t, s)
	require.Equal(t, 19, LandingRow(s.Board(), p))

	s.KeyDown(core.ActionHardDrop, t0)
	s.KeyUp(at(5 * time.Millisecond))

	assert.Equal(t, PhaseHardDrop, s.Phase())
	require.Len(t, rec.drops, 1)
	assert.Equal(t, dropCall{from: 1, target: 19, d: 180 * time.Millisecond}, rec.drops[0])
	assert.Equal(t, 1, activePiece(t, s).Anchor.Y)

	// Moves and spins are ignored mid-animation.
	s.Tap(core.ActionLeft, at(10*time.Millisecond))
	s.Tap(core.ActionSpinRight, at(10*time.Millisecond))
	s.Tick(at(10 * time.Millisecond))
	s.Tick(at(20 * time.Millisecond))
	assert.Equal(t, core.Pt(3, 1), activePiece(t, s).Anchor)
	assert.Equal(t, PieceI.BaseOffsets(), activePiece(t, s).Offsets)

	s.Tick(at(30 * time.Millisecond))
	assert.Equal(t, PhaseFalling, s.Phase())
	assert.Equal(t, core.Pt(3, 19), activePiece(t, s).Anchor)

	// Locks through the ordinary grace path.
	s.Tick(at(530 * time.Millisecond))
	assert.Equal(t, PhaseFalling, s.Phase())
	s.Tick(at(830 * time.Millisecond))
	assert.Equal(t, PhaseSpawning, s.Phase())
	assert.Len(t, s.Board().Occupied(), 4)
}

func TestHardDropOnGroundIsNoop(t *testing.T) {
	rec := &recordingRenderer{steps: 1}
	s := newTestSession(t, []PieceType{PieceO}, 0, WithSize(10, 3), WithRenderer(rec))
	s.Tick(t0) // O covers rows 1-2, already grounded

	s.Tap(core.ActionHardDrop, t0)

	assert.Equal(t, PhaseFalling, s.Phase())
	assert.Empty(t, rec.drops)
}

func TestSpinWithKicksDisabledReverts(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceI}, 0, WithRules(Rules{}), WithSize(10, 3))
	s.Tick(t0)
	before := activePiece(t, s)

	// A vertical I needs four rows.
	s.Tap(core.ActionSpinRight, t0)
	s.Tap(core.ActionSpinLeft, t0)

	assert.Equal(t, before, activePiece(t, s))
}

func TestSpinUsesKicks(t *testing.T) {
	s := newTestSession(t, []PieceType{PieceT}, 4)
	s.Tick(t0)
	s.Board().Lock(core.Pt(5, 3))

	s.Tap(core.ActionSpinRight, t0)

	assert.Equal(t, core.Pt(5, 1), activePiece(t, s).Anchor)
}

func TestCloseDropsPieceAndAnimation(t *testing.T) {
	rec := &recordingRenderer{steps: 100}
	s := newTestSession(t, []PieceType{PieceI}, 3, WithRenderer(rec))
	s.Tick(t0)
	s.Tap(core.ActionHardDrop, t0)
	require.Equal(t, PhaseHardDrop, s.Phase())

	s.Close()

	assert.Equal(t, PhaseIdle, s.Phase())
	_, ok := s.Active()
	assert.False(t, ok)

	tick := s.Snapshot().Tick
	s.Tick(at(time.Second))
	assert.Equal(t, tick, s.Snapshot().Tick, "closed session does not tick")
}

func TestSnapshotDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(WithPieceSource(NewRandomSource(12345)))
		require.NoError(t, s.Start(t0))
		for i := range 3000 {
			now := at(time.Duration(i) * 16 * time.Millisecond)
			switch i % 97 {
			case 10:
				s.KeyDown(core.ActionLeft, now)
			case 20:
				s.KeyUp(now)
			case 30:
				s.Tap(core.ActionSpinRight, now)
			case 60:
				s.Tap(core.ActionHardDrop, now)
			}
			s.Tick(now)
		}
		return s.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "line_clear", PhaseLineClear.String())
	assert.Equal(t, "paused", PhasePaused.String())
}
