package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// count is the cleared-line total for "lines" progression and the score
// for "score" progression; ticks drives "time" progression.
func (d *DifficultyManager) Level(count int, ticks uint64) float64 {
	if !d.cfg.Enabled {
		return 0.0
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "lines", "score":
		progress = float64(count) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the current speed multiplier based on difficulty level.
func (d *DifficultyManager) Speed(count int, ticks uint64) float64 {
	level := d.Level(count, ticks)
	// Speed increases from 1 to 1 + speedMultiplier
	return 1.0 + level*d.cfg.Scaling.SpeedMultiplier
}

// GravityInterval scales base by the current speed, never going below
// floor. With difficulty disabled it returns base unchanged.
func (d *DifficultyManager) GravityInterval(base, floor time.Duration, count int, ticks uint64) time.Duration {
	speed := d.Speed(count, ticks)
	if speed <= 0 {
		return base
	}
	interval := time.Duration(float64(base) / speed)
	if interval < floor {
		interval = floor
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
