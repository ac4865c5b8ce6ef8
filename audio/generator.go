package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine tone with a short attack and linear release
type ToneGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// NewToneGenerator creates a tone generator shaped for duration d
func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:      sr,
		freq:    freq,
		samples: max(sr.N(d), 1),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := g.sr.N(5 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := 1.0
		if g.pos < attack {
			envelope = float64(g.pos) / float64(attack)
		}
		release := 1 - float64(g.pos)/float64(g.samples)
		envelope *= math.Max(release, 0)

		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// ClickGenerator generates a low-passed noise burst with an exponential decay
type ClickGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
	prev float64
}

// NewClickGenerator creates a click generator from a noise seed
func NewClickGenerator(sr beep.SampleRate, seed uint32) *ClickGenerator {
	return &ClickGenerator{sr: sr, seed: seed}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 200)

		g.seed = g.seed*1103515245 + 12345
		noise := float64(g.seed>>1)/float64(math.MaxUint32>>1)*2 - 1

		// One-pole low-pass for a duller mechanical click
		g.prev += 0.35 * (noise - g.prev)

		sample := 0.3 * envelope * g.prev
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}
