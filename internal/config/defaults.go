package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Columns: 10,
			Rows:    20,
		},
		Timing: TetrisTiming{
			GravityMs:        500,
			MinGravityMs:     100,
			StickyMs:         300,
			KeyRepeatMs:      120,
			HardDropPerRowMs: 10,
		},
		Rules: TetrisRules{
			WallKick:  true,
			FloorKick: true,
		},
		Input: TetrisInput{
			ReleaseAfterMs: 0,
		},
		Audio: TetrisAudio{
			Enabled: true,
			Volume:  0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 3.0,
			},
		},
	}
}
