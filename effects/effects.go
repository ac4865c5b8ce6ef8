// Package effects provides the animated programs hosted in desktop windows.
//
// Every effect redraws its whole viewport on each Update, the frame is cleared
// and window chrome repainted before plugins run.
package effects

import (
	"errors"
	"math/rand/v2"

	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

var errNoViewport = errors.New("no viewport")

// Names lists every built-in effect in registration order
var Names = []string{"matrix", "log", "hex", "map", "spectrum", "graph", "globe", "code", "boot"}

// RegisterAll registers the built-in effects through register
// Registration continues past failures, the first error is returned
func RegisterAll(register func(name string, factory plugin.Factory) error) error {
	factories := map[string]plugin.Factory{
		"matrix":   func() (plugin.Plugin, error) { return NewMatrix(), nil },
		"log":      func() (plugin.Plugin, error) { return NewLog(), nil },
		"hex":      func() (plugin.Plugin, error) { return NewHex(), nil },
		"map":      func() (plugin.Plugin, error) { return NewRadar(), nil },
		"spectrum": func() (plugin.Plugin, error) { return NewSpectrum(), nil },
		"graph":    func() (plugin.Plugin, error) { return NewGraph(), nil },
		"globe":    func() (plugin.Plugin, error) { return NewGlobe(), nil },
		"code":     func() (plugin.Plugin, error) { return NewCode(), nil },
		"boot":     func() (plugin.Plugin, error) { return NewBios(), nil },
	}
	var first error
	for _, name := range Names {
		if err := register(name, factories[name]); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// canvas holds the state every effect receives at Init
type canvas struct {
	vp   *render.Viewport
	w, h int
	rand func() float64
}

func (c *canvas) bind(ctx plugin.Context) error {
	if ctx.Viewport == nil {
		return errNoViewport
	}
	c.vp = ctx.Viewport
	c.w, c.h = ctx.Width, ctx.Height
	c.rand = ctx.Rand
	if c.rand == nil {
		c.rand = rand.Float64
	}
	return nil
}

// intn returns a random int in [0,n)
func (c *canvas) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return min(int(c.rand()*float64(n)), n-1)
}

// between returns a random float in [lo,hi)
func (c *canvas) between(lo, hi float64) float64 {
	return lo + c.rand()*(hi-lo)
}

// Destroy drops the lent viewport
func (c *canvas) Destroy() {
	c.vp = nil
}
