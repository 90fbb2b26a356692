// Package config provides YAML-based game configuration loading and
// difficulty management for the tetris platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Board      TetrisBoard      `yaml:"board"`
	Timing     TetrisTiming     `yaml:"timing"`
	Rules      TetrisRules      `yaml:"rules"`
	Input      TetrisInput      `yaml:"input"`
	Audio      TetrisAudio      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisBoard defines the playfield size.
type TetrisBoard struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// TetrisTiming defines loop intervals in milliseconds.
type TetrisTiming struct {
	GravityMs        int `yaml:"gravity_ms"`          // Automatic drop interval
	MinGravityMs     int `yaml:"min_gravity_ms"`      // Floor for difficulty speed-up
	StickyMs         int `yaml:"sticky_ms"`           // Grace before a grounded piece locks
	KeyRepeatMs      int `yaml:"key_repeat_ms"`       // Held key repeat interval
	HardDropPerRowMs int `yaml:"hard_drop_per_row_ms"` // Descent animation time per row
}

// TetrisRules toggles rotation kicks.
type TetrisRules struct {
	WallKick  bool `yaml:"wall_kick"`
	FloorKick bool `yaml:"floor_kick"`
}

// TetrisInput configures terminal input handling.
type TetrisInput struct {
	// ReleaseAfterMs emulates key release for terminals, which only report
	// presses. 0 treats every press as a tap.
	ReleaseAfterMs int `yaml:"release_after_ms"`
}

// TetrisAudio configures sound effects.
type TetrisAudio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// Gravity returns the base gravity interval.
func (t TetrisTiming) Gravity() time.Duration { return ms(t.GravityMs) }

// MinGravity returns the fastest gravity interval difficulty may reach.
func (t TetrisTiming) MinGravity() time.Duration { return ms(t.MinGravityMs) }

// Sticky returns the lock grace period.
func (t TetrisTiming) Sticky() time.Duration { return ms(t.StickyMs) }

// KeyRepeat returns the held key repeat interval.
func (t TetrisTiming) KeyRepeat() time.Duration { return ms(t.KeyRepeatMs) }

// HardDropPerRow returns the descent animation time per row.
func (t TetrisTiming) HardDropPerRow() time.Duration { return ms(t.HardDropPerRowMs) }

// ReleaseAfter returns the emulated key release delay.
func (i TetrisInput) ReleaseAfter() time.Duration { return ms(i.ReleaseAfterMs) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first out-of-range value.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Columns < 4:
		return fmt.Errorf("board.columns = %d, need at least 4: %w", c.Board.Columns, ErrInvalidConfig)
	case c.Board.Rows <= 0:
		return fmt.Errorf("board.rows = %d, must be positive: %w", c.Board.Rows, ErrInvalidConfig)
	case c.Timing.GravityMs <= 0:
		return fmt.Errorf("timing.gravity_ms = %d, must be positive: %w", c.Timing.GravityMs, ErrInvalidConfig)
	case c.Timing.MinGravityMs < 0 || c.Timing.MinGravityMs > c.Timing.GravityMs:
		return fmt.Errorf("timing.min_gravity_ms = %d, must be in [0, gravity_ms]: %w", c.Timing.MinGravityMs, ErrInvalidConfig)
	case c.Timing.StickyMs < 0:
		return fmt.Errorf("timing.sticky_ms = %d, must not be negative: %w", c.Timing.StickyMs, ErrInvalidConfig)
	case c.Timing.KeyRepeatMs <= 0:
		return fmt.Errorf("timing.key_repeat_ms = %d, must be positive: %w", c.Timing.KeyRepeatMs, ErrInvalidConfig)
	case c.Timing.HardDropPerRowMs < 0:
		return fmt.Errorf("timing.hard_drop_per_row_ms = %d, must not be negative: %w", c.Timing.HardDropPerRowMs, ErrInvalidConfig)
	case c.Input.ReleaseAfterMs < 0:
		return fmt.Errorf("input.release_after_ms = %d, must not be negative: %w", c.Input.ReleaseAfterMs, ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume = %g, must be in [0, 1]: %w", c.Audio.Volume, ErrInvalidConfig)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. An empty name is accepted and
// leaves the configured difficulty untouched.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}
