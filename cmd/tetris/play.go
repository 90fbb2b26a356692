package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/gui"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagGUI     bool
	flagNoSound bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant ("tetris" if omitted).

Controls:
  Left/Right    - Move
  Down          - Soft drop
  Space         - Hard drop
  Z / X, Up     - Spin left / right
  P             - Pause (P again or C to continue)
  R             - Restart
  Q/Ctrl+C      - Quit

Terminals report key presses only, so held keys rely on the terminal's
own auto-repeat. Set input.release_after_ms in tetris.yaml to emulate
holds, or use --gui for real key releases.

Difficulty options:
  easy   - Gravity starts slow and speeds up with cleared lines
  normal - Starts at 30% of the speed-up
  hard   - Starts at 70% and shortens the lock delay
  fixed  - No speed-up

Examples:
  tetris play
  tetris play tetris_classic
  tetris play --difficulty hard
  tetris play --gui --no-sound
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a desktop window")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(tetris.VariantModern)
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'tetris list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sound, stopSound := startSound(!flagNoSound)
	defer stopSound()

	cfg := runtimeConfig()
	handlers := handlersFor(gameID, sound)

	if flagGUI {
		tg, ok := game.(*tetris.Game)
		if !ok {
			return fmt.Errorf("variant %q cannot run in a window", gameID)
		}
		for _, h := range handlers {
			tg.Attach(h)
		}
		return gui.Run(tg, gui.Options{Store: store, Config: cfg, Logger: logger})
	}

	return tui.Run(game, tui.Options{
		Store:    store,
		Config:   cfg,
		Logger:   logger,
		Handlers: handlers,
	})
}
