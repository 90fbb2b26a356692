package config

import (
	"testing"
	"time"
)

func TestGravityIntervalDisabled(t *testing.T) {
	d := NewDifficultyManager(DefaultTetrisConfig().Difficulty)
	if got := d.GravityInterval(500*time.Millisecond, 100*time.Millisecond, 80, 0); got != 500*time.Millisecond {
		t.Errorf("GravityInterval() = %v, expected 500ms", got)
	}
}

func TestGravityIntervalByLines(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "lines", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 3.0},
	}
	d := NewDifficultyManager(cfg)
	base := 500 * time.Millisecond
	floor := 100 * time.Millisecond

	tests := []struct {
		lines int
		want  time.Duration
	}{
		{0, 500 * time.Millisecond},
		{50, 200 * time.Millisecond},  // speed 2.5
		{100, 125 * time.Millisecond}, // speed 4
		{500, 125 * time.Millisecond}, // clamped progress
	}
	for _, tt := range tests {
		if got := d.GravityInterval(base, floor, tt.lines, 0); got != tt.want {
			t.Errorf("GravityInterval(lines=%d) = %v, expected %v", tt.lines, got, tt.want)
		}
	}

	d.cfg.Scaling.SpeedMultiplier = 9.0
	if got := d.GravityInterval(base, floor, 100, 0); got != floor {
		t.Errorf("GravityInterval() = %v, expected floor %v", got, floor)
	}
}

func TestLevelInitial(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "lines", MaxAt: 10},
	})
	if got := d.Level(5, 0); got != 0.75 {
		t.Errorf("Level(5) = %v, expected 0.75", got)
	}
	if !d.IsEnabled() {
		t.Error("IsEnabled() = false for lines progression")
	}

	d = NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "none"},
	})
	if d.IsEnabled() {
		t.Error("IsEnabled() = true for progression type none")
	}
}
