package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

const testRate = beep.SampleRate(1000)

// drain streams s to exhaustion and returns every sample produced.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func peak(samples [][2]float64) float64 {
	var p float64
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw} {
		got := drain(NewOscillator(100, 100*time.Millisecond, wave, testRate))
		if len(got) != 100 {
			t.Errorf("wave %d: got %d samples, want 100", wave, len(got))
		}
		if p := peak(got); p > 1 {
			t.Errorf("wave %d: peak %f exceeds 1", wave, p)
		}
	}
}

func TestSquareWaveLevels(t *testing.T) {
	got := drain(NewOscillator(100, 10*time.Millisecond, WaveSquare, testRate))
	// 10 samples per period: five high then five low.
	for i, s := range got {
		want := 1.0
		if i >= 5 {
			want = -1
		}
		if s[0] != want || s[1] != want {
			t.Fatalf("sample %d = %v, want %f", i, s, want)
		}
	}
}

func TestEnvelopeFades(t *testing.T) {
	d := 100 * time.Millisecond
	osc := NewOscillator(100, d, WaveSquare, testRate)
	got := drain(NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, testRate))

	if len(got) != 100 {
		t.Fatalf("got %d samples, want 100", len(got))
	}
	if got[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 (attack start)", got[0][0])
	}
	if math.Abs(got[50][0]) != 1 {
		t.Errorf("sustain sample = %f, want full level", got[50][0])
	}
	if math.Abs(got[99][0]) > 0.11 {
		t.Errorf("last sample = %f, want near silence", got[99][0])
	}
}

func TestClearSoundLength(t *testing.T) {
	notes := testRate.N(noteDuration)
	tests := []struct {
		rows  int
		notes int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 4},
		{6, 4},
	}
	for _, tt := range tests {
		got := len(drain(ClearSound(tt.rows, testRate, 1)))
		if got != tt.notes*notes {
			t.Errorf("ClearSound(%d): %d samples, want %d", tt.rows, got, tt.notes*notes)
		}
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	got := drain(GameOverSound(testRate, 0))
	if len(got) == 0 {
		t.Fatal("silent stream should still run its length")
	}
	if p := peak(got); p != 0 {
		t.Errorf("peak = %f, want 0", p)
	}
}

func TestSoundManagerEvents(t *testing.T) {
	sm := NewSoundManager(0.8)
	var played int
	sm.play = func(beep.Streamer) { played++ }

	sm.OnLock(tetris.ActivePiece{})
	if played != 0 {
		t.Fatal("uninitialized manager should stay silent")
	}

	sm.initialized = true
	sm.OnSpawn(tetris.ActivePiece{})
	sm.OnLock(tetris.ActivePiece{})
	sm.OnLinesCleared([]int{18, 19}, 2)
	sm.OnGameOver(2)
	if played != 3 {
		t.Errorf("played %d effects, want 3", played)
	}
}

func TestSoundManagerVolumeClamp(t *testing.T) {
	if v := NewSoundManager(3).Volume(); v != 1 {
		t.Errorf("Volume() = %f, want 1", v)
	}
	if v := NewSoundManager(-1).Volume(); v != 0 {
		t.Errorf("Volume() = %f, want 0", v)
	}

	sm := NewSoundManager(0)
	sm.initialized = true
	sm.play = func(beep.Streamer) { t.Fatal("muted manager should not play") }
	sm.OnLock(tetris.ActivePiece{})
}
