package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// Effect timings.
const (
	lockDuration     = 40 * time.Millisecond
	noteDuration     = 70 * time.Millisecond
	gameOverDuration = 600 * time.Millisecond
	attack           = 5 * time.Millisecond
	release          = 30 * time.Millisecond
)

// clearNotes is the ascending arpeggio for line clears (C5 E5 G5 C6).
var clearNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// oscillator generates a fixed-length wave.
type oscillator struct {
	freq     float64
	sweep    float64 // frequency change per sample
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing d worth of the wave at freq Hz.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

// NewSweep is an oscillator gliding linearly from one frequency to another.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	o := &oscillator{freq: from, length: n, wave: wave, rate: rate}
	if n > 0 {
		o.sweep = (to - from) / float64(n)
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.freq += o.sweep
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over the attack and out over the release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which is expected to last d.
func NewEnvelope(s beep.Streamer, d, att, rel time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(att),
		release:  rate.N(rel),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// LockSound is a short low click.
func LockSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(tone(220, lockDuration, WaveSquare, rate), vol*0.5)
}

// ClearSound plays one arpeggio note per cleared row; four rows get the
// full octave.
func ClearSound(rows int, rate beep.SampleRate, vol float64) beep.Streamer {
	rows = max(1, min(rows, len(clearNotes)))
	notes := make([]beep.Streamer, 0, rows)
	for _, f := range clearNotes[:rows] {
		notes = append(notes, tone(f, noteDuration, WaveSine, rate))
	}
	return newVolume(beep.Seq(notes...), vol)
}

// GameOverSound is a falling saw buzz.
func GameOverSound(rate beep.SampleRate, vol float64) beep.Streamer {
	sweep := NewSweep(440, 110, gameOverDuration, WaveSaw, rate)
	shaped := NewEnvelope(sweep, gameOverDuration, attack, 200*time.Millisecond, rate)
	return newVolume(shaped, vol*0.6)
}
