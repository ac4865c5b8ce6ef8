package effects

import (
	"math"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const (
	matrixMinSpeed   = 6.0 // rows per second
	matrixMaxSpeed   = 18.0
	matrixMinTrail   = 5
	matrixMaxTrail   = 20
	matrixFlickerSec = 0.1
)

// rainColumn is one falling glyph trail, head at the bottom
type rainColumn struct {
	head    float64
	speed   float64
	glyphs  []rune
	flicker core.Timer
}

// Matrix draws falling glyph rain, one column per cell
type Matrix struct {
	canvas
	cols []rainColumn
	tail *render.Gradient
}

// NewMatrix creates the rain effect
func NewMatrix() *Matrix {
	return &Matrix{
		tail: render.NewGradient(
			render.GradientStop{Pos: 0, Color: render.RGBWhite},
			render.GradientStop{Pos: 0.3, Color: render.RGBPhosphor},
			render.GradientStop{Pos: 1, Color: render.RGBPhosphorGrid},
		),
	}
}

func (m *Matrix) Init(ctx plugin.Context) error {
	if err := m.bind(ctx); err != nil {
		return err
	}
	m.cols = make([]rainColumn, m.w)
	for i := range m.cols {
		trail := matrixMinTrail + m.intn(matrixMaxTrail-matrixMinTrail)
		col := rainColumn{
			head:    m.rand()*float64(m.h)*1.5 - float64(m.h)*0.5,
			speed:   m.between(matrixMinSpeed, matrixMaxSpeed),
			glyphs:  make([]rune, trail),
			flicker: core.Timer{Elapsed: m.rand() * matrixFlickerSec, Period: matrixFlickerSec},
		}
		for j := range col.glyphs {
			col.glyphs[j] = m.glyph()
		}
		m.cols[i] = col
	}
	return nil
}

// glyph returns a random half-width katakana or printable latin rune
func (m *Matrix) glyph() rune {
	if m.rand() > 0.5 {
		return rune(0xFF66 + m.intn(56))
	}
	return rune(0x21 + m.intn(93))
}

func (m *Matrix) Update(dt float64, _ plugin.AuxState) error {
	for x := range m.cols {
		col := &m.cols[x]
		col.head += col.speed * dt

		// Recycle once the whole trail has left the bottom edge
		if col.head-float64(len(col.glyphs)) > float64(m.h) {
			col.head = -m.rand() * float64(m.h) * 0.5
			col.speed = m.between(matrixMinSpeed, matrixMaxSpeed)
		}

		var fired bool
		if col.flicker, fired = col.flicker.Step(dt); fired {
			col.glyphs[m.intn(len(col.glyphs))] = m.glyph()
		}

		head := int(math.Floor(col.head))
		trail := float64(len(col.glyphs))
		for i, g := range col.glyphs {
			m.vp.Set(x, head-i, g, m.trailColor(float64(i)/trail))
		}
	}
	return nil
}

// trailColor is the gradient at f, fading into the background toward the tail end
func (m *Matrix) trailColor(f float64) render.RGB {
	return render.Blend(m.tail.At(f), render.RGBBackground, f*f)
}
