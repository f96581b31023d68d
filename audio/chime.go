package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/nodefield/parameter"
)

const (
	sampleRate = beep.SampleRate(48000)

	// chimeAttack/chimeRelease are envelope ramps as fractions of the tone
	chimeAttack  = 0.1
	chimeRelease = 0.5

	// chimeMinRatio is the pitch ratio for the longest edge
	chimeMinRatio = 0.5
)

// closeSpeaker releases the output device, swapped in tests
var closeSpeaker = speaker.Close

// Chime plays a short tone when a pulse arrives at its destination node
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	maxDistance float64
	initialized bool
	muted       bool
}

// NewChime creates a chime pitched against edges up to maxDistance long
func NewChime(maxDistance float64) *Chime {
	if maxDistance <= 0 {
		maxDistance = parameter.ConnectionDistance
	}
	return &Chime{
		mixer:       &beep.Mixer{},
		maxDistance: maxDistance,
	}
}

// Initialize opens the speaker, safe to call more than once
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences pending tones
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	closeSpeaker()

	c.initialized = false
}

// ToggleMute flips mute state, returns true if now audible
func (c *Chime) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
	return !c.muted
}

// Play queues one arrival tone; shorter edges ring higher
func (c *Chime) Play(distance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}

	tone, err := newTone(sampleRate, Pitch(distance, c.maxDistance), parameter.ChimeDuration)
	if err != nil {
		return
	}

	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Pitch maps edge length to tone frequency, from ChimeBaseFreq down to half of it
func Pitch(distance, maxDistance float64) float64 {
	ratio := 0.0
	if maxDistance > 0 {
		ratio = math.Max(0, math.Min(distance/maxDistance, 1))
	}
	return parameter.ChimeBaseFreq * (1 - ratio*(1-chimeMinRatio))
}

// newTone builds a bounded, enveloped sine of duration d
func newTone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0fHz: %w", freq, err)
	}

	total := sr.N(d)
	shaped := &envelope{
		Streamer: beep.Take(total, sine),
		total:    total,
	}

	return &effects.Volume{
		Streamer: shaped,
		Base:     2,
		Volume:   parameter.ChimeVolume,
	}, nil
}

// envelope applies a linear attack and release to avoid clicks
type envelope struct {
	beep.Streamer
	pos   int
	total int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.Streamer.Stream(samples)
	attack := float64(e.total) * chimeAttack
	release := float64(e.total) * chimeRelease

	for i := 0; i < n; i++ {
		pos := float64(e.pos)
		gain := 1.0
		if pos < attack {
			gain = pos / attack
		}
		if remain := float64(e.total) - pos; remain < release {
			gain = math.Min(gain, remain/release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}
