// Package audio plays the boot chimes through the system speaker
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	beepFreq     = 880
	beepDuration = 120 * time.Millisecond

	clickDuration = 30 * time.Millisecond
)

// Player emits the sounds of the boot sequence
type Player interface {
	// Beep plays the power-on self test tone
	Beep()
	// Click plays a short key click
	Click()
	Close()
}

// Silent is a Player that does nothing
type Silent struct{}

func (Silent) Beep()  {}
func (Silent) Click() {}
func (Silent) Close() {}

// Speaker plays sounds through the default output device
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	seed        uint32
}

// NewSpeaker initializes the output device
// A failure leaves no usable speaker, callers fall back to Silent
func NewSpeaker() (*Speaker, error) {
	s := &Speaker{
		mixer: &beep.Mixer{},
		seed:  uint32(time.Now().UnixNano()),
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return s, nil
}

// Beep plays the POST tone
func (s *Speaker) Beep() {
	s.play(beep.Take(sampleRate.N(beepDuration), NewToneGenerator(sampleRate, beepFreq, beepDuration)))
}

// Click plays a noise burst, each click uses a fresh seed so repeated clicks differ
func (s *Speaker) Click() {
	s.mu.Lock()
	s.seed = s.seed*1664525 + 1013904223
	seed := s.seed
	s.mu.Unlock()
	s.play(beep.Take(sampleRate.N(clickDuration), NewClickGenerator(sampleRate, seed)))
}

func (s *Speaker) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback, later calls are ignored
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}
