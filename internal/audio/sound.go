// Package audio plays the short success and failure cues of a round.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue durations.
const (
	ChimeNoteDuration = 90 * time.Millisecond
	BuzzDuration      = 160 * time.Millisecond
	fadeDuration      = 10 * time.Millisecond
)

// Player mixes feedback cues into the speaker. A Player that failed to
// initialize stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player. Volume is linear in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		logger: logger,
	}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Initialized reports whether the speaker is open.
func (p *Player) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close stops all cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Success plays a rising two note chime.
func (p *Player) Success() {
	p.play(Chime(sampleRate), "chime")
}

// Failure plays a short low buzz.
func (p *Player) Failure() {
	p.play(Buzz(sampleRate), "buzz")
}

func (p *Player) play(s beep.Streamer, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.logger.Debug("audio cue", "cue", name)
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
}

// Chime returns the success cue.
func Chime(sr beep.SampleRate) beep.Streamer {
	return beep.Seq(
		NewTone(sr, 660, ChimeNoteDuration, 0.5),
		NewTone(sr, 990, ChimeNoteDuration+30*time.Millisecond, 0.5),
	)
}

// Buzz returns the failure cue.
func Buzz(sr beep.SampleRate) beep.Streamer {
	return beep.Mix(
		NewTone(sr, 110, BuzzDuration, 0.4),
		NewTone(sr, 220, BuzzDuration, 0.2),
	)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Tone is a finite sine wave with a linear fade at both ends.
type Tone struct {
	sr    beep.SampleRate
	freq  float64
	amp   float64
	pos   int
	total int
	fade  int
}

// NewTone creates a tone of the given frequency, length and amplitude.
func NewTone(sr beep.SampleRate, freq float64, d time.Duration, amp float64) *Tone {
	total := sr.N(d)
	return &Tone{
		sr:    sr,
		freq:  freq,
		amp:   amp,
		total: total,
		fade:  min(sr.N(fadeDuration), total/2),
	}
}

// Len returns the tone length in samples.
func (t *Tone) Len() int { return t.total }

// Stream fills samples with the next part of the tone. It reports false
// once the tone has finished.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		sec := float64(t.pos) / float64(t.sr)
		v := t.amp * t.envelope() * math.Sin(2*math.Pi*t.freq*sec)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *Tone) envelope() float64 {
	if t.fade == 0 {
		return 1
	}
	switch {
	case t.pos < t.fade:
		return float64(t.pos) / float64(t.fade)
	case t.pos >= t.total-t.fade:
		return float64(t.total-t.pos) / float64(t.fade)
	default:
		return 1
	}
}

// Err always returns nil; a generated tone cannot fail.
func (t *Tone) Err() error {
	return nil
}
