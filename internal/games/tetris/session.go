package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Default board size and timings.
const (
	DefaultColumns = 10
	DefaultRows    = 20
)

// Phase is the state of the session loop.
type Phase int

const (
	PhaseIdle      Phase = iota // not started, or closed
	PhaseSpawning               // no active piece; next tick spawns one
	PhaseFalling                // gravity and input active
	PhaseHardDrop               // hard-drop descent animation running
	PhaseLineClear              // clearing full rows one at a time
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseHardDrop:
		return "hard_drop"
	case PhaseLineClear:
		return "line_clear"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Timing holds the loop intervals.
type Timing struct {
	Gravity        time.Duration // between automatic one-row steps
	Sticky         time.Duration // grace before a grounded piece locks
	KeyRepeat      time.Duration // between repeats of a held key
	HardDropPerRow time.Duration // descent animation time per row
}

// DefaultTiming returns the stock intervals.
func DefaultTiming() Timing {
	return Timing{
		Gravity:        500 * time.Millisecond,
		Sticky:         300 * time.Millisecond,
		KeyRepeat:      120 * time.Millisecond,
		HardDropPerRow: 10 * time.Millisecond,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithSize sets the board dimensions.
func WithSize(cols, rows int) Option {
	return func(s *Session) {
		s.cols = cols
		s.rows = rows
	}
}

// WithTiming sets the loop intervals.
func WithTiming(t Timing) Option {
	return func(s *Session) { s.timing = t }
}

// WithRules sets the kick switches.
func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithPieceSource sets where new pieces come from.
func WithPieceSource(src PieceSource) Option {
	return func(s *Session) { s.source = src }
}

// WithRenderer sets the drawing target.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithHandler sets the event handler. Use Handlers to attach several.
func WithHandler(h EventHandler) Option {
	return func(s *Session) { s.handler = h }
}

// WithScoreFunc sets how cleared rows turn into points.
func WithScoreFunc(f ScoreFunc) Option {
	return func(s *Session) { s.scoreFn = f }
}

// Session is one game. It is driven from a single goroutine through
// Start, Close, KeyDown, KeyUp, Tap and Tick.
type Session struct {
	cols, rows int
	timing     Timing
	gravity    time.Duration // configured interval, restored on Start
	rules      Rules
	source     PieceSource
	renderer   Renderer
	handler    EventHandler
	scoreFn    ScoreFunc

	board  *Board
	active *ActivePiece
	phase  Phase

	lastFall    time.Time
	sticky      bool
	stickySince time.Time
	key         keyRepeat

	anim        Animation
	dropTarget  int
	clearCursor int
	clearedRows []int

	score int
	lines int
	tick  uint64
	err   error
}

// NewSession creates an idle session. Call Start to begin play.
func NewSession(opts ...Option) *Session {
	s := &Session{
		cols:     DefaultColumns,
		rows:     DefaultRows,
		timing:   DefaultTiming(),
		rules:    DefaultRules(),
		renderer: NopRenderer{},
		handler:  HandlerFuncs{},
		scoreFn:  LineScore,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		s.source = NewRandomSource(time.Now().UnixNano())
	}
	s.gravity = s.timing.Gravity
	return s
}

// Start (re)initializes the board, timers and counters. The first tick
// after Start spawns a piece.
func (s *Session) Start(now time.Time) error {
	s.err = s.start(now)
	return s.err
}

func (s *Session) start(now time.Time) error {
	if s.cols < MinColumns {
		return fmt.Errorf("tetris: %d columns (need at least %d): %w", s.cols, MinColumns, ErrInvalidDimensions)
	}
	if s.board == nil || s.board.Columns() != s.cols || s.board.Rows() != s.rows {
		b, err := NewBoard(s.cols, s.rows)
		if err != nil {
			return fmt.Errorf("tetris: %dx%d board: %w", s.cols, s.rows, err)
		}
		s.board = b
	}
	s.restart(now)
	return nil
}

// Err returns the error of the last Start, including one triggered by the
// Start key.
func (s *Session) Err() error { return s.err }

func (s *Session) restart(now time.Time) {
	s.Close()
	s.board.Reset()
	s.score = 0
	s.lines = 0
	s.tick = 0
	s.timing.Gravity = s.gravity
	s.renderer.DrawBackground()
	s.lastFall = now
	s.phase = PhaseSpawning
}

// Close stops the session: any running animation is dropped together with
// the active piece. The board keeps its contents.
func (s *Session) Close() {
	s.anim = nil
	s.active = nil
	s.clearedRows = nil
	s.sticky = false
	s.key.release()
	s.phase = PhaseIdle
}

// Gravity returns the current gravity interval.
func (s *Session) Gravity() time.Duration { return s.timing.Gravity }

// SetGravity changes the gravity interval until the next Start.
func (s *Session) SetGravity(d time.Duration) {
	if d > 0 {
		s.timing.Gravity = d
	}
}

// KeyDown applies a once and holds it for repeating. Non-repeatable
// actions are consumed immediately.
func (s *Session) KeyDown(a core.Action, now time.Time) {
	s.key.press(a, now, s.timing.KeyRepeat)
	if !repeatable(a) {
		s.key.release()
	}
	s.apply(a, now)
}

// KeyUp re-applies the held action once and releases it, so a tap shorter
// than the repeat interval still moves the piece.
func (s *Session) KeyUp(now time.Time) {
	if !s.key.held {
		return
	}
	a := s.key.action
	s.key.release()
	s.apply(a, now)
}

// Tap applies a once without engaging the repeat tracker.
func (s *Session) Tap(a core.Action, now time.Time) {
	s.apply(a, now)
}

// Tick advances the session to now. Hosts call it once per frame.
func (s *Session) Tick(now time.Time) {
	if s.phase == PhaseIdle {
		return
	}
	s.tick++

	switch s.phase {
	case PhaseSpawning:
		s.spawn(now)
	case PhaseFalling:
		s.fall(now)
	case PhaseHardDrop:
		s.lastFall = now
		s.advanceHardDrop(now)
	case PhaseLineClear:
		s.lastFall = now
		s.advanceClear(now)
	case PhasePaused, PhaseGameOver:
		s.lastFall = now
	}
}

func (s *Session) spawn(now time.Time) {
	t := s.source.Next()
	col := s.source.Column(s.cols - 3)
	p := NewPiece(t, core.Pt(col, 0))

	s.key.release()
	s.sticky = false
	s.lastFall = now

	// The piece must be able to take its first step down.
	p.Anchor.Y++
	if !s.board.Fits(p.Cells()) {
		p.Anchor.Y--
		s.renderer.DrawPiece(p, false)
		s.active = nil
		s.phase = PhaseGameOver
		s.handler.OnGameOver(s.score)
		return
	}

	s.active = &p
	s.renderer.DrawPiece(p, false)
	s.phase = PhaseFalling
	s.handler.OnSpawn(p.Clone())
}

func (s *Session) fall(now time.Time) {
	if s.key.due(now, s.timing.KeyRepeat) {
		s.apply(s.key.action, now)
	}
	if s.phase != PhaseFalling || s.active == nil {
		return
	}
	if now.Sub(s.lastFall) < s.timing.Gravity {
		return
	}

	// Stickiness survives sliding off a ledge; only a new piece clears it.
	if s.shift(0, 1) {
		s.lastFall = now
		return
	}
	if !s.sticky {
		s.sticky = true
		s.stickySince = now
	}
	if now.Sub(s.stickySince) >= s.timing.Sticky {
		s.lock(now)
	}
}

func (s *Session) lock(now time.Time) {
	p := *s.active
	s.board.Lock(p.Cells()...)
	s.active = nil
	s.sticky = false
	s.handler.OnLock(p.Clone())

	s.phase = PhaseLineClear
	s.clearCursor = 0
	s.clearedRows = nil
	s.advanceClear(now)
}

// advanceClear continues the top-to-bottom scan. Each full row is removed
// from the board and its animation must finish before the scan moves on.
// The scan never restarts, so rows that become full through an earlier
// removal in the same pass are left in place.
func (s *Session) advanceClear(now time.Time) {
	for {
		if s.anim != nil {
			if !s.anim.Advance(now) {
				return
			}
			s.anim = nil
			if s.active != nil {
				s.renderer.DrawPiece(*s.active, false)
			}
			s.clearCursor++
		}
		if s.clearCursor >= s.rows {
			break
		}
		if !s.board.IsRowFull(s.clearCursor) {
			s.clearCursor++
			continue
		}

		s.board.ClearRow(s.clearCursor)
		s.clearedRows = append(s.clearedRows, s.clearCursor)
		if s.active != nil {
			s.renderer.DrawPiece(*s.active, true)
		}
		s.anim = s.renderer.PlayClearRow(s.clearCursor)
		if s.anim == nil {
			s.anim = doneAnimation{}
		}
	}

	if n := len(s.clearedRows); n > 0 {
		s.score += s.scoreFn(n)
		s.lines += n
		s.handler.OnLinesCleared(s.clearedRows, s.lines)
	}
	s.clearedRows = nil
	s.phase = PhaseSpawning
}

func (s *Session) advanceHardDrop(now time.Time) {
	if s.anim != nil && !s.anim.Advance(now) {
		return
	}
	s.anim = nil
	if s.active != nil {
		s.active.Anchor.Y = s.dropTarget
	}
	s.phase = PhaseFalling
}

// apply performs one action against the current state.
func (s *Session) apply(a core.Action, now time.Time) {
	switch a {
	case core.ActionStart:
		if s.Start(now) != nil {
			s.Close()
		}
		return
	case core.ActionPause:
		if s.phase == PhaseFalling {
			s.key.release()
			s.phase = PhasePaused
		}
		return
	case core.ActionContinue:
		if s.phase == PhasePaused {
			s.lastFall = now
			s.phase = PhaseFalling
		}
		return
	}

	if s.phase != PhaseFalling || s.active == nil {
		return
	}

	switch a {
	case core.ActionLeft:
		s.shift(-1, 0)
	case core.ActionRight:
		s.shift(1, 0)
	case core.ActionSoftDrop:
		s.shift(0, 1)
	case core.ActionSpinLeft:
		s.spin(false)
	case core.ActionSpinRight:
		s.spin(true)
	case core.ActionHardDrop:
		s.hardDrop()
	}
}

// shift moves the active piece when the target placement is legal.
func (s *Session) shift(dx, dy int) bool {
	next := s.active.Moved(dx, dy)
	if !s.board.Fits(next.Cells()) {
		return false
	}
	s.commit(next)
	return true
}

func (s *Session) spin(clockwise bool) bool {
	next, _, ok := ResolveRotation(s.board, *s.active, clockwise, s.rules)
	if !ok {
		return false
	}
	s.commit(next)
	return true
}

func (s *Session) commit(next ActivePiece) {
	s.renderer.DrawPiece(*s.active, true)
	s.active = &next
	s.renderer.DrawPiece(next, false)
}

func (s *Session) hardDrop() {
	target := LandingRow(s.board, *s.active)
	rows := target - s.active.Anchor.Y
	if rows <= 0 {
		return
	}
	s.dropTarget = target
	s.phase = PhaseHardDrop
	s.anim = s.renderer.PlayHardDropDescent(s.active.Clone(), target, time.Duration(rows)*s.timing.HardDropPerRow)
}

// Phase returns the current loop state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Lines returns the number of rows cleared so far.
func (s *Session) Lines() int { return s.lines }

// Columns returns the configured board width.
func (s *Session) Columns() int { return s.cols }

// Rows returns the configured board height.
func (s *Session) Rows() int { return s.rows }

// Rules returns the kick switches.
func (s *Session) Rules() Rules { return s.rules }

// Active returns a copy of the falling piece, if any.
func (s *Session) Active() (ActivePiece, bool) {
	if s.active == nil {
		return ActivePiece{}, false
	}
	return s.active.Clone(), true
}

// Board returns the session board. Callers must not mutate it; it is nil
// until the first Start.
func (s *Session) Board() *Board { return s.board }
