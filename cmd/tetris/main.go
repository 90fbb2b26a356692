// tetris plays falling-block puzzles in the terminal, in a desktop window
// or over SSH.
//
// Usage:
//
//	tetris list              - List available variants
//	tetris play [variant]    - Play a variant (default "tetris")
//	tetris menu              - Pick variants and difficulty interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores [variant]  - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>           - Set frame rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible piece order
//	--db <path>            - Set database path (default: ~/.tetris/scores.db)
//	--config <path>        - Use a custom tetris.yaml
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error (default: warn)
//	--log-file <path>      - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is configured by the root command before any subcommand runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tetris",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `Tetris with wall and floor kicks, sticky landing and animated line
clears. Runs in the terminal, in a desktop window (--gui) or as an SSH
server.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  tetris play
  tetris play tetris_classic --difficulty hard
  tetris play --gui
  tetris menu
  tetris serve --ssh :2222
  tetris scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup applies the global flags shared by every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logger.SetOutput(f)
	}

	if fps := flagFPS; fps <= 0 || fps > 240 {
		return fmt.Errorf("--fps must be in 1..240, got %d", fps)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	return nil
}
