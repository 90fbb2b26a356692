// Package gui runs tetris in a desktop window with Ebiten, which reports
// real key releases.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Window layout in pixels.
const (
	cellSize = 24
	margin   = 16
	panelW   = 180
)

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	gridColor       = color.RGBA{40, 40, 52, 255}
)

// palette maps piece colors to RGB.
var palette = map[core.Color]color.RGBA{
	core.ColorCyan:   {0, 240, 240, 255},
	core.ColorYellow: {240, 240, 0, 255},
	core.ColorPurple: {160, 0, 240, 255},
	core.ColorGreen:  {0, 240, 0, 255},
	core.ColorRed:    {240, 0, 0, 255},
	core.ColorBlue:   {0, 0, 240, 255},
	core.ColorOrange: {240, 160, 0, 255},
	core.ColorWhite:  {255, 255, 255, 255},
	core.ColorGray:   {128, 128, 128, 255},
}

// Options configures the desktop shell.
type Options struct {
	Store  *storage.Store
	Config core.RuntimeConfig
	Logger *log.Logger
}

// Shell implements ebiten.Game around a tetris game.
type Shell struct {
	game   *tetris.Game
	store  *storage.Store
	logger *log.Logger
	keys   keyTracker

	frame      core.InputFrame
	state      core.GameState
	scoreSaved bool

	pressed  []ebiten.Key
	released []ebiten.Key
}

// NewShell resets game and wraps it for Ebiten.
func NewShell(game *tetris.Game, opts Options) *Shell {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	game.Reset(cfg)
	if err := game.ConfigErr(); err != nil {
		logger.Warn("using default config", "game", game.ID(), "error", err)
	}
	return &Shell{game: game, store: opts.Store, logger: logger}
}

// Update collects key transitions and advances the game to the wall clock.
func (s *Shell) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	s.released = inpututil.AppendJustReleasedKeys(s.released[:0])
	s.keys.collect(&s.frame, s.pressed, s.released)

	s.frame.Now = time.Now()
	s.state = s.game.Step(s.frame).State
	s.frame.Clear()

	if !s.state.GameOver {
		s.scoreSaved = false
	} else if !s.scoreSaved {
		s.saveScore()
		s.scoreSaved = true
	}
	return nil
}

func (s *Shell) saveScore() {
	if s.store == nil || s.state.Score <= 0 {
		return
	}
	if _, err := s.store.SaveScore(s.game.ID(), s.state.Score, s.state.Lines); err != nil {
		s.logger.Warn("could not save score", "game", s.game.ID(), "error", err)
	}
}

// Draw paints the playfield from the game's tile surface, then the panel.
func (s *Shell) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	surface := s.game.Surface()
	for row := 0; row < surface.Rows(); row++ {
		for col := 0; col < surface.Columns(); col++ {
			x := float32(margin + col*cellSize)
			y := float32(margin + row*cellSize)
			c, ok := palette[surface.Tile(col, row)]
			if !ok {
				vector.StrokeRect(screen, x, y, cellSize, cellSize, 1, gridColor, false)
				continue
			}
			vector.DrawFilledRect(screen, x+1, y+1, cellSize-2, cellSize-2, c, false)
		}
	}

	px := margin*2 + surface.Columns()*cellSize
	ebitenutil.DebugPrintAt(screen, s.panelText(), px, margin)
}

func (s *Shell) panelText() string {
	text := fmt.Sprintf("%s\n\nScore  %d\nLines  %d\nDrop   %dms\n\n",
		s.game.Title(), s.state.Score, s.state.Lines, s.game.Session().Gravity().Milliseconds())
	switch {
	case s.state.GameOver:
		text += "GAME OVER\nR to restart\n\n"
	case s.state.Paused:
		text += "PAUSED\nP or C to continue\n\n"
	}
	return text + "Arrows  move / drop\nUp X Z  spin\nSpace   hard drop\nP C R   pause/cont/new\nQ Esc   quit"
}

// Layout fixes the logical screen to the board and panel size.
func (s *Shell) Layout(int, int) (int, int) {
	return windowSize(s.game.Surface())
}

func windowSize(surface *tetris.Surface) (int, int) {
	w := margin*3 + surface.Columns()*cellSize + panelW
	h := margin*2 + surface.Rows()*cellSize
	return w, h
}

// Run opens a window and plays game until it is closed.
func Run(game *tetris.Game, opts Options) error {
	shell := NewShell(game, opts)

	ebiten.SetWindowSize(windowSize(game.Surface()))
	ebiten.SetWindowTitle(game.Title())
	if opts.Config.TickRate > 0 {
		ebiten.SetTPS(opts.Config.TickRate)
	}

	return ebiten.RunGame(shell)
}
