// Package audio plays short synthesized effects for tetris events through
// the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager implements tetris.EventHandler by mixing effects into a
// single speaker stream. It is silent until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	// play queues a streamer; replaced in tests.
	play func(beep.Streamer)
}

// NewSoundManager creates a sound manager with the given master volume in
// [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
	sm.play = sm.addToMixer
	return sm
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops playback and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Volume returns the master volume.
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

func (sm *SoundManager) addToMixer(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func (sm *SoundManager) emit(build func(vol float64) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume <= 0 {
		return
	}
	sm.play(build(sm.volume))
}

func (sm *SoundManager) OnSpawn(tetris.ActivePiece) {}

func (sm *SoundManager) OnLock(tetris.ActivePiece) {
	sm.emit(func(vol float64) beep.Streamer { return LockSound(sampleRate, vol) })
}

func (sm *SoundManager) OnLinesCleared(rows []int, _ int) {
	sm.emit(func(vol float64) beep.Streamer { return ClearSound(len(rows), sampleRate, vol) })
}

func (sm *SoundManager) OnGameOver(int) {
	sm.emit(func(vol float64) beep.Streamer { return GameOverSound(sampleRate, vol) })
}
