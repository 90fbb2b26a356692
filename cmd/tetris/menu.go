package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and difficulty from a menu",
	Long: `Start in interactive menu mode.

Pick a variant, then a difficulty. After a game you return to the menu.
Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc/B        - Back
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sound, stopSound := startSound(!flagNoSound)
	defer stopSound()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", result.GameID, "error", err)
			continue
		}
		if tg, ok := game.(*tetris.Game); ok && result.Preset != "" {
			tg.UsePreset(result.Preset)
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		err = tui.Run(game, tui.Options{
			Store:    store,
			Config:   cfg,
			Logger:   logger,
			Handlers: handlersFor(result.GameID, sound),
		})
		if err != nil {
			logger.Error("game ended with error", "game", result.GameID, "error", err)
		}
	}
}
