package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpHeight is the number of rows reserved below the playfield.
const helpHeight = 1

// Options configures a game model.
type Options struct {
	Store    *storage.Store
	Config   core.RuntimeConfig
	Logger   *log.Logger
	Handlers []tetris.EventHandler

	// Embedded models report Back instead of quitting the program.
	Embedded bool
}

// configured is implemented by games that load a tetris config on Reset.
type configured interface {
	Config() config.TetrisConfig
	ConfigErr() error
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger
	keys   GameKeyMap
	help   help.Model

	frame     core.InputFrame
	gameState core.GameState

	// Terminals report presses only. With releaseAfter set, a press is
	// held and released once no new key arrives within the delay.
	releaseAfter time.Duration
	releaseAt    time.Time

	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewModel resets game for the given options and wraps it in a model.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	if a, ok := game.(attachable); ok {
		for _, h := range opts.Handlers {
			a.Attach(h)
		}
	}
	game.Reset(cfg)

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:     opts.Store,
		config:    cfg,
		logger:    logger,
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		gameState: game.State(),
		embedded:  opts.Embedded,
	}
	m.help.Width = cfg.ScreenW
	if c, ok := game.(configured); ok {
		if err := c.ConfigErr(); err != nil {
			logger.Warn("using default config", "game", game.ID(), "error", err)
		}
		if err := c.Config().Validate(); err == nil {
			m.releaseAfter = c.Config().Input.ReleaseAfter()
		}
	}
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the key's action for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	default:
		if m.releaseAfter > 0 {
			m.frame.Press(a)
			m.releaseAt = time.Now().Add(m.releaseAfter)
		} else {
			m.frame.Tap(a)
		}
	}
	return m, nil
}

// handleTick runs one frame stamped with the tick time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.releaseAt.IsZero() && !now.Before(m.releaseAt) {
		m.frame.Release()
		m.releaseAt = time.Time{}
	}
	m.frame.Now = now

	result := m.game.Step(m.frame)
	m.gameState = result.State
	m.frame.Clear()

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished game. Empty games are skipped.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Lines); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current screen as text to ~/.tetris/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the playfield and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the game state after the last frame.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
