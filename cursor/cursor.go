// Package cursor implements the blinking caret owned by each window
package cursor

import (
	"github.com/lixenwraith/hollywood/constants"
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/render"
)

// Shape selects the drawn geometry of the cursor
type Shape uint8

const (
	ShapeBlock Shape = iota
	ShapeUnderline
	ShapeLine
)

// String returns the config name of the shape
func (s Shape) String() string {
	switch s {
	case ShapeUnderline:
		return "underline"
	case ShapeLine:
		return "line"
	default:
		return "block"
	}
}

// ParseShape maps a name to a Shape, unknown names map to ShapeBlock
func ParseShape(name string) Shape {
	switch name {
	case "underline":
		return ShapeUnderline
	case "line":
		return ShapeLine
	default:
		return ShapeBlock
	}
}

// glyph is one cell of the cached cursor pattern
type glyph struct {
	dx, dy int
	r      rune
}

// Cursor is a blinking caret positioned in a window's content viewport
// enabled is the master switch owned by the hosting plugin, blinkPhase is driven by the timer
type Cursor struct {
	x, y   int
	width  int
	height int
	shape  Shape
	color  render.RGB

	enabled    bool
	blinkPhase bool
	blink      core.Timer

	pattern []glyph
	redraws int
}

// New creates a disabled block cursor with the default size and blink period
func New() *Cursor {
	c := &Cursor{
		width:      constants.CursorWidth,
		height:     constants.CursorHeight,
		shape:      ShapeBlock,
		color:      render.RGBPhosphor,
		blinkPhase: true,
		blink:      core.NewTimer(constants.CursorBlinkPeriod.Seconds()),
	}
	c.redraw()
	return c
}

// SetEnabled sets the master switch and restarts the blink cycle in the visible phase
func (c *Cursor) SetEnabled(enabled bool) {
	c.enabled = enabled
	c.blinkPhase = true
	c.blink = c.blink.Reset()
}

// Enabled reports the master switch
func (c *Cursor) Enabled() bool {
	return c.enabled
}

// BlinkPhase reports whether the blink cycle is in its visible half
func (c *Cursor) BlinkPhase() bool {
	return c.blinkPhase
}

// Visible reports effective visibility: enabled and in the visible blink phase
func (c *Cursor) Visible() bool {
	return c.enabled && c.blinkPhase
}

// SetPosition moves the cursor in viewport-local cells
func (c *Cursor) SetPosition(x, y int) {
	c.x = x
	c.y = y
}

// Position returns the viewport-local position
func (c *Cursor) Position() (int, int) {
	return c.x, c.y
}

// SetSize changes the cursor box in cells, non-positive values clamp to 1
func (c *Cursor) SetSize(w, h int) {
	w = max(w, 1)
	h = max(h, 1)
	if w == c.width && h == c.height {
		return
	}
	c.width = w
	c.height = h
	c.redraw()
}

// Size returns the cursor box in cells
func (c *Cursor) Size() (int, int) {
	return c.width, c.height
}

// SetShape changes the drawn geometry
func (c *Cursor) SetShape(s Shape) {
	if s == c.shape {
		return
	}
	c.shape = s
	c.redraw()
}

// Shape returns the current shape
func (c *Cursor) Shape() Shape {
	return c.shape
}

// SetColor changes the cursor color
func (c *Cursor) SetColor(rgb render.RGB) {
	c.color = rgb
}

// SetBlinkPeriod changes the blink half-period in seconds
func (c *Cursor) SetBlinkPeriod(seconds float64) {
	c.blink.Period = seconds
}

// Update advances the blink timer, no-op while disabled
func (c *Cursor) Update(dt float64) {
	if !c.enabled {
		return
	}
	var fired bool
	c.blink, fired = c.blink.Step(dt)
	if fired {
		c.blinkPhase = !c.blinkPhase
	}
}

// redraw rebuilds the cached cell pattern, called on size or shape change only
func (c *Cursor) redraw() {
	c.redraws++
	c.pattern = c.pattern[:0]
	switch c.shape {
	case ShapeUnderline:
		for dx := 0; dx < c.width; dx++ {
			c.pattern = append(c.pattern, glyph{dx: dx, dy: c.height - 1, r: '▁'})
		}
	case ShapeLine:
		for dy := 0; dy < c.height; dy++ {
			c.pattern = append(c.pattern, glyph{dx: 0, dy: dy, r: '▏'})
		}
	default:
		for dy := 0; dy < c.height; dy++ {
			for dx := 0; dx < c.width; dx++ {
				c.pattern = append(c.pattern, glyph{dx: dx, dy: dy, r: '█'})
			}
		}
	}
}

// Draw paints the cached pattern into the viewport when visible
func (c *Cursor) Draw(vp *render.Viewport) {
	if !c.Visible() || vp == nil {
		return
	}
	for _, g := range c.pattern {
		vp.Set(c.x+g.dx, c.y+g.dy, g.r, c.color)
	}
}
