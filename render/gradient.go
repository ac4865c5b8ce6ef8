package render

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop anchors a color at a position in [0,1]
type GradientStop struct {
	Pos   float64
	Color RGB
}

// Gradient interpolates between stops in Lab space
// Lookups are precomputed into a fixed table since effects sample it per cell per frame
type Gradient struct {
	lut [256]RGB
}

// NewGradient builds a gradient from at least one stop, unsorted input is accepted
func NewGradient(stops ...GradientStop) *Gradient {
	g := &Gradient{}
	if len(stops) == 0 {
		return g
	}
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	for i := range g.lut {
		g.lut[i] = sample(sorted, float64(i)/255.0)
	}
	return g
}

// At returns the color at position t, clamped to [0,1]
func (g *Gradient) At(t float64) RGB {
	if t <= 0 {
		return g.lut[0]
	}
	if t >= 1 {
		return g.lut[255]
	}
	return g.lut[int(t*255+0.5)]
}

func sample(stops []GradientStop, t float64) RGB {
	if t <= stops[0].Pos {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Pos {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Pos {
			continue
		}
		span := b.Pos - a.Pos
		if span <= 0 {
			return b.Color
		}
		mixed := toColorful(a.Color).BlendLab(toColorful(b.Color), (t-a.Pos)/span).Clamped()
		r, g, bl := mixed.RGB255()
		return RGB{r, g, bl}
	}
	return last.Color
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
