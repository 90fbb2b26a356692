package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// startSound opens the speaker when the config enables audio. The
// returned stop function is always safe to call.
func startSound(enabled bool) (tetris.EventHandler, func()) {
	if !enabled {
		return nil, func() {}
	}
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	if !cfg.Audio.Enabled || cfg.Audio.Volume <= 0 {
		return nil, func() {}
	}

	sm := audio.NewSoundManager(cfg.Audio.Volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return nil, func() {}
	}
	return sm, sm.Cleanup
}

// handlersFor returns the event handlers attached to a local game.
func handlersFor(gameID string, sound tetris.EventHandler) []tetris.EventHandler {
	hs := []tetris.EventHandler{tui.NewLogHandler(logger, gameID)}
	if sound != nil {
		hs = append(hs, sound)
	}
	return hs
}
