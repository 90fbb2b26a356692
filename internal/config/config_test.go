package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultTetrisConfig()
	var embedded TetrisConfig
	if err := yaml.Unmarshal(defaultTetrisYAML, &embedded); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if embedded != cfg {
		t.Errorf("embedded config = %+v, expected %+v", embedded, cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestTimingDurations(t *testing.T) {
	tm := DefaultTetrisConfig().Timing
	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"gravity", tm.Gravity(), 500 * time.Millisecond},
		{"sticky", tm.Sticky(), 300 * time.Millisecond},
		{"key repeat", tm.KeyRepeat(), 120 * time.Millisecond},
		{"hard drop per row", tm.HardDropPerRow(), 10 * time.Millisecond},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
	}{
		{"narrow board", func(c *TetrisConfig) { c.Board.Columns = 3 }},
		{"no rows", func(c *TetrisConfig) { c.Board.Rows = 0 }},
		{"zero gravity", func(c *TetrisConfig) { c.Timing.GravityMs = 0 }},
		{"floor above gravity", func(c *TetrisConfig) { c.Timing.MinGravityMs = 600 }},
		{"negative sticky", func(c *TetrisConfig) { c.Timing.StickyMs = -1 }},
		{"zero repeat", func(c *TetrisConfig) { c.Timing.KeyRepeatMs = 0 }},
		{"loud", func(c *TetrisConfig) { c.Audio.Volume = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("board:\n  columns: 12\ntiming:\n  gravity_ms: 800\nrules:\n  floor_kick: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if cfg.Board.Columns != 12 {
		t.Errorf("Columns = %d, expected 12", cfg.Board.Columns)
	}
	if cfg.Board.Rows != 20 {
		t.Errorf("Rows = %d, expected default 20", cfg.Board.Rows)
	}
	if cfg.Timing.GravityMs != 800 {
		t.Errorf("GravityMs = %d, expected 800", cfg.Timing.GravityMs)
	}
	if !cfg.Rules.WallKick || cfg.Rules.FloorKick {
		t.Errorf("Rules = %+v, expected wall kick only", cfg.Rules)
	}
}

func TestLoadTetrisErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadTetris(missing) error = nil, expected error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(bad); err == nil {
		t.Error("LoadTetris(malformed) error = nil, expected error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  rows: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadTetris(invalid) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, "")
	if cfg != DefaultTetrisConfig() {
		t.Error("empty preset changed the config")
	}

	ApplyTetrisPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard difficulty = %+v", cfg.Difficulty)
	}
	if cfg.Timing.StickyMs != 200 {
		t.Errorf("hard StickyMs = %d, expected 200", cfg.Timing.StickyMs)
	}

	ApplyTetrisPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset left progression enabled")
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) error = %v", name, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) error = nil, expected error")
	}
}
