package tetris

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant selects the rule set of a registered game.
type Variant string

const (
	VariantModern  Variant = "tetris"         // wall and floor kicks from config
	VariantClassic Variant = "tetris_classic" // no kicks
)

// Layout constants for the terminal playfield.
const (
	hudHeight = 1
	tileWidth = 2
	panelGap  = 2
	panelW    = 18
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = "" // Use config default
	}
	difficultyPreset = p
}

// Game adapts a Session to the platform game interface. It owns the
// session, its tile surface and the difficulty curve.
type Game struct {
	variant    Variant
	runtime    core.RuntimeConfig
	cfg        config.TetrisConfig
	cfgErr     error
	difficulty *config.DifficultyManager
	preset     *config.DifficultyPreset

	session  *Session
	surface  *Surface
	handlers Handlers

	started bool
	now     time.Time // last frame time
	frame   time.Duration
}

// New creates a tetris game with kicks taken from config.
func New() *Game {
	return &Game{variant: VariantModern}
}

// NewClassic creates a tetris game with both kicks disabled.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

func init() {
	registry.Register(string(VariantModern), func() registry.Game {
		return New()
	})
	registry.Register(string(VariantClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Tetris (Classic)"
	}
	return "Tetris"
}

// Attach adds an event handler. Handlers survive Reset and may be added
// while a game is running.
func (g *Game) Attach(h EventHandler) {
	g.handlers = append(g.handlers, h)
}

// UsePreset overrides the package-level difficulty preset for this game
// from the next Reset on.
func (g *Game) UsePreset(p config.DifficultyPreset) {
	g.preset = &p
}

// Config returns the configuration loaded by the last Reset.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// ConfigErr returns the error hit while loading configuration, if any.
// The game falls back to defaults in that case.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadTetris(configPath)
	g.cfgErr = err
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}

	// Apply difficulty preset if set
	preset := difficultyPreset
	if g.preset != nil {
		preset = *g.preset
	}
	config.ApplyTetrisPreset(&cfg, preset)
	g.cfg = cfg

	// Initialize difficulty manager
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.build()

	g.frame = time.Second / 60
	if runtime.TickRate > 0 {
		g.frame = time.Second / time.Duration(runtime.TickRate)
	}
	g.started = false
	g.now = time.Time{}
}

// build creates the surface and session from the loaded config.
func (g *Game) build() {
	cfg := g.cfg
	rules := Rules{WallKick: cfg.Rules.WallKick, FloorKick: cfg.Rules.FloorKick}
	if g.variant == VariantClassic {
		rules = Rules{}
	}

	g.surface = NewSurface(cfg.Board.Columns, cfg.Board.Rows)
	g.session = NewSession(
		WithSize(cfg.Board.Columns, cfg.Board.Rows),
		WithTiming(Timing{
			Gravity:        g.gravity(0, 0),
			Sticky:         cfg.Timing.Sticky(),
			KeyRepeat:      cfg.Timing.KeyRepeat(),
			HardDropPerRow: cfg.Timing.HardDropPerRow(),
		}),
		WithRules(rules),
		WithPieceSource(NewRandomSource(g.runtime.Seed)),
		WithRenderer(g.surface),
		WithHandler(gameEvents{g}),
	)
}

func (g *Game) gravity(lines int, ticks uint64) time.Duration {
	return g.difficulty.GravityInterval(g.cfg.Timing.Gravity(), g.cfg.Timing.MinGravity(), lines, ticks)
}

// gameEvents applies the difficulty curve, then forwards events to the
// attached handlers.
type gameEvents struct{ g *Game }

func (e gameEvents) OnSpawn(p ActivePiece) { e.g.handlers.OnSpawn(p) }
func (e gameEvents) OnLock(p ActivePiece) { e.g.handlers.OnLock(p) }
func (e gameEvents) OnGameOver(score int) { e.g.handlers.OnGameOver(score) }

func (e gameEvents) OnLinesCleared(rows []int, total int) {
	s := e.g.session
	s.SetGravity(e.g.gravity(total, s.tick))
	e.g.handlers.OnLinesCleared(rows, total)
}

// Step advances the game by one frame. Frames without a timestamp run on a
// synthetic clock advancing by one tick interval, which keeps headless runs
// deterministic.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	now := in.Now
	if now.IsZero() {
		now = g.now.Add(g.frame)
	}
	g.now = now

	if !g.started {
		if err := g.session.Start(now); err != nil {
			g.cfgErr = err
			g.cfg = config.DefaultTetrisConfig()
			g.build()
			if err := g.session.Start(now); err != nil {
				g.cfgErr = errors.Join(g.cfgErr, err)
			}
		}
		g.started = true
	}

	for _, ev := range in.Events {
		switch {
		case !ev.Down:
			g.session.KeyUp(now)
		case ev.Action == core.ActionPause && g.session.Phase() == PhasePaused:
			g.session.Tap(core.ActionContinue, now)
		case ev.Tap:
			g.session.Tap(ev.Action, now)
		default:
			g.session.KeyDown(ev.Action, now)
		}
	}

	g.session.Tick(now)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		GameOver: g.session.Phase() == PhaseGameOver,
		Paused:   g.session.Phase() == PhasePaused,
	}
}

// Surface returns the tile surface the session draws into.
func (g *Game) Surface() *Surface {
	return g.surface
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	boardW := g.surface.Columns()*tileWidth + 2
	boardH := g.surface.Rows() + 2
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight))
		return
	}

	// Center the board, leaving room for the side panel when it fits.
	totalW := boardW
	showPanel := dst.Width() >= boardW+panelGap+panelW
	if showPanel {
		totalW += panelGap + panelW
	}
	originX := (dst.Width() - totalW) / 2
	originY := hudHeight + (dst.Height()-hudHeight-boardH)/2

	g.renderBoard(dst, originX, originY)
	if showPanel {
		g.renderPanel(dst, originX+boardW+panelGap, originY)
	}

	switch g.session.Phase() {
	case PhaseGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.session.Score()))
	case PhasePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Lines: %d", g.Title(), g.session.Score(), g.session.Lines())
	dst.DrawText(0, 0, hud)
}

// renderBoard draws the framed playfield from the tile surface.
func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	cols, rows := g.surface.Columns(), g.surface.Rows()
	dst.DrawBox(core.NewRect(x0, y0, cols*tileWidth+2, rows+2))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sx := x0 + 1 + x*tileWidth
			sy := y0 + 1 + y
			c := g.surface.Tile(x, y)
			if c == core.ColorDefault {
				dst.SetCell(sx, sy, core.Cell{Rune: ' ', Color: core.ColorGray})
				dst.SetCell(sx+1, sy, core.Cell{Rune: '·', Color: core.ColorGray})
				continue
			}
			dst.SetCell(sx, sy, core.Cell{Rune: '█', Color: c})
			dst.SetCell(sx+1, sy, core.Cell{Rune: '█', Color: c})
		}
	}
}

// renderPanel draws the stats and control hints next to the board.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	rules := g.session.Rules()
	lines := []string{
		fmt.Sprintf("Score  %d", g.session.Score()),
		fmt.Sprintf("Lines  %d", g.session.Lines()),
		fmt.Sprintf("Drop   %dms", g.session.Gravity().Milliseconds()),
		fmt.Sprintf("Kicks  %s", kickLabel(rules)),
	}
	if g.difficulty.IsEnabled() {
		level := g.difficulty.Level(g.session.Lines(), g.session.tick)
		lines = append(lines, fmt.Sprintf("Level  %.0f%%", level*100))
	}
	lines = append(lines,
		"",
		"←/→   move",
		"↓     soft drop",
		"space hard drop",
		"z/x   spin",
		"p     pause",
		"r     restart",
	)
	for i, line := range lines {
		dst.DrawText(x, y+i, line)
	}
}

func kickLabel(r Rules) string {
	switch {
	case r.WallKick && r.FloorKick:
		return "wall+floor"
	case r.WallKick:
		return "wall"
	case r.FloorKick:
		return "floor"
	default:
		return "off"
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
