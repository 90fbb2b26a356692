package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// attachable is implemented by games that publish gameplay events.
type attachable interface {
	Attach(h tetris.EventHandler)
}

// LogHandler writes gameplay events to a logger at debug level.
type LogHandler struct {
	logger *log.Logger
	gameID string
}

// NewLogHandler creates a handler logging events for gameID.
func NewLogHandler(logger *log.Logger, gameID string) *LogHandler {
	return &LogHandler{logger: logger, gameID: gameID}
}

func (h *LogHandler) OnSpawn(p tetris.ActivePiece) {
	h.logger.Debug("spawn", "game", h.gameID, "piece", p.Type, "x", p.Anchor.X)
}

func (h *LogHandler) OnLock(p tetris.ActivePiece) {
	h.logger.Debug("lock", "game", h.gameID, "piece", p.Type, "x", p.Anchor.X, "y", p.Anchor.Y)
}

func (h *LogHandler) OnLinesCleared(rows []int, total int) {
	h.logger.Debug("lines cleared", "game", h.gameID, "rows", rows, "total", total)
}

func (h *LogHandler) OnGameOver(score int) {
	h.logger.Info("game over", "game", h.gameID, "score", score)
}
