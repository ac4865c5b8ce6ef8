package effects

import (
	"math"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const (
	spectrumBars      = 16
	spectrumRetarget  = 0.15
	spectrumJitter    = 0.15
	spectrumFloor     = 0.1
	spectrumCeiling   = 0.9
	spectrumFollow    = 2.0
	spectrumPeakLevel = 0.8
	// spectrumAxisCols reserves the dB scale on the left
	spectrumAxisCols = 4
)

var (
	spectrumHz = []string{"60", "125", "250", "500", "1k", "2k", "4k", "8k", "16k"}
	spectrumDB = []string{"0", "-6", "-12", "-24"}
)

// Spectrum draws a segmented band analyzer drifting toward random levels
type Spectrum struct {
	canvas
	values  [spectrumBars]float64
	targets [spectrumBars]float64
	retime  core.Timer
}

// NewSpectrum creates the analyzer effect
func NewSpectrum() *Spectrum {
	return &Spectrum{}
}

func (s *Spectrum) Init(ctx plugin.Context) error {
	if err := s.bind(ctx); err != nil {
		return err
	}
	for i := range s.values {
		s.values[i] = s.between(spectrumFloor, spectrumCeiling)
		s.targets[i] = s.values[i]
	}
	s.retime = core.NewTimer(spectrumRetarget)
	return nil
}

// Values returns the current band levels in [0,1]
func (s *Spectrum) Values() []float64 {
	return s.values[:]
}

func (s *Spectrum) Update(dt float64, _ plugin.AuxState) error {
	var fired bool
	if s.retime, fired = s.retime.Step(dt); fired {
		for i := range s.targets {
			t := s.targets[i] + s.between(-spectrumJitter, spectrumJitter)
			s.targets[i] = math.Max(spectrumFloor, math.Min(spectrumCeiling, t))
		}
	}
	follow := math.Min(dt*spectrumFollow, 1)
	for i := range s.values {
		s.values[i] += (s.targets[i] - s.values[i]) * follow
	}

	// One row is kept for the frequency labels
	rows := s.h - 1
	cols := s.w - spectrumAxisCols
	if rows <= 0 || cols <= 0 {
		return nil
	}
	slot := max(cols/spectrumBars, 1)
	bar := max(slot-1, 1)

	for i, v := range s.values {
		x0 := spectrumAxisCols + i*slot
		lit := int(math.Round(v * float64(rows)))
		for seg := range rows {
			y := rows - 1 - seg
			switch {
			case seg >= lit:
				s.vp.FillRect(x0, y, bar, 1, '░', render.RGBPhosphorGhost)
			case float64(seg+1)/float64(rows) > spectrumPeakLevel:
				s.vp.FillRect(x0, y, bar, 1, '█', peakColor(float64(seg+1)/float64(rows)))
			default:
				s.vp.FillRect(x0, y, bar, 1, '█', render.RGBPhosphorMid)
			}
		}
	}

	for i, label := range spectrumDB {
		y := i * (rows - 1) / max(len(spectrumDB)-1, 1)
		s.vp.Text(0, y, label, render.RGBPhosphorDim)
	}
	span := spectrumBars * slot
	for i, label := range spectrumHz {
		x := spectrumAxisCols + i*span/len(spectrumHz)
		s.vp.Text(x, rows, label, render.RGBPhosphorDim)
	}
	return nil
}

// peakColor adds a bright glow to lit segments above the peak level, strongest at the top
func peakColor(level float64) render.RGB {
	glow := (level - spectrumPeakLevel) / (1 - spectrumPeakLevel)
	return render.Add(render.RGBPhosphorMid, render.Scale(render.RGBPhosphorBright, glow))
}
