package tetris

import "time"

// Animation is a running visual sequence. Advance is called once per tick
// with the current time and reports true once the sequence has finished.
// The first call fixes the start time.
type Animation interface {
	Advance(now time.Time) bool
}

// Renderer is the drawing contract the session drives. Implementations
// own their surface; the session never reads it back.
type Renderer interface {
	// DrawBackground clears the playfield.
	DrawBackground()
	// DrawPiece paints the piece cells, or blanks them when erase is set.
	DrawPiece(p ActivePiece, erase bool)
	// PlayClearRow animates the removal of row. The board has already
	// dropped the row when this is called.
	PlayClearRow(row int) Animation
	// PlayHardDropDescent moves p down to targetRow over d.
	PlayHardDropDescent(p ActivePiece, targetRow int, d time.Duration) Animation
}

// doneAnimation finishes on its first Advance.
type doneAnimation struct{}

func (doneAnimation) Advance(time.Time) bool { return true }

// NopRenderer draws nothing and completes every animation immediately.
type NopRenderer struct{}

func (NopRenderer) DrawBackground() {}
func (NopRenderer) DrawPiece(ActivePiece, bool) {}
func (NopRenderer) PlayClearRow(int) Animation { return doneAnimation{} }
func (NopRenderer) PlayHardDropDescent(ActivePiece, int, time.Duration) Animation { return doneAnimation{} }

// clock tracks elapsed time from the first Advance call.
type clock struct {
	started bool
	start   time.Time
}

func (c *clock) elapsed(now time.Time) time.Duration {
	if !c.started {
		c.started = true
		c.start = now
	}
	return now.Sub(c.start)
}
