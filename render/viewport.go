package render

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// CellAspect is the height/width ratio of a terminal cell
// Round shapes divide vertical extents by it
const CellAspect = 2.0

// Viewport is a clipped drawing target inside a layer
// Local coordinates run over [0,W)x[0,H), anything outside is dropped.
// A revoked viewport ignores all drawing.
type Viewport struct {
	layer   *Layer
	x, y    float64 // origin in layer reference space
	w, h    int
	revoked bool
}

// Size returns local dimensions
func (v *Viewport) Size() (int, int) {
	return v.w, v.h
}

// Width returns local width
func (v *Viewport) Width() int {
	return v.w
}

// Height returns local height
func (v *Viewport) Height() int {
	return v.h
}

// Origin returns the viewport origin in layer reference space
func (v *Viewport) Origin() (float64, float64) {
	return v.x, v.y
}

// Revoke permanently disables drawing through this viewport
func (v *Viewport) Revoke() {
	v.revoked = true
}

// Revoked reports whether the viewport was revoked
func (v *Viewport) Revoked() bool {
	return v.revoked
}

// ScreenRect returns the clip rectangle in screen cells under the current layer transform
func (v *Viewport) ScreenRect() Rect {
	if v.layer == nil {
		return Rect{}
	}
	return v.layer.transform.Rect(v.x, v.y, float64(v.w), float64(v.h))
}

// target returns the screen cells covered by local cell (x,y), empty when not drawable
func (v *Viewport) target(x, y int) (Rect, *Buffer) {
	if v == nil || v.revoked || !v.layer.drawable() {
		return Rect{}, nil
	}
	if x < 0 || y < 0 || x >= v.w || y >= v.h {
		return Rect{}, nil
	}
	t := v.layer.transform
	cell := t.Cell(v.x+float64(x), v.y+float64(y))
	clip := v.ScreenRect().Intersect(v.layer.buf.Bounds())
	return cell.Intersect(clip), v.layer.buf
}

// Set writes a rune keeping the existing background
func (v *Viewport) Set(x, y int, r rune, fg RGB) {
	v.SetAttr(x, y, r, fg, AttrNone)
}

// SetAttr writes a rune with text attributes keeping the existing background
func (v *Viewport) SetAttr(x, y int, r rune, fg RGB, attrs Attr) {
	rect, buf := v.target(x, y)
	if rect.Empty() {
		return
	}
	if runewidth.RuneWidth(r) == 2 {
		// Wide runes cannot tile a scaled block, anchor at the block origin
		buf.Set(rect.X, rect.Y, r, fg, attrs)
		return
	}
	for sy := rect.Y; sy < rect.Y+rect.H; sy++ {
		for sx := rect.X; sx < rect.X+rect.W; sx++ {
			buf.Set(sx, sy, r, fg, attrs)
		}
	}
}

// SetWithBg writes a rune with explicit foreground and background
func (v *Viewport) SetWithBg(x, y int, r rune, fg, bg RGB) {
	rect, buf := v.target(x, y)
	if rect.Empty() {
		return
	}
	for sy := rect.Y; sy < rect.Y+rect.H; sy++ {
		for sx := rect.X; sx < rect.X+rect.W; sx++ {
			buf.SetWithBg(sx, sy, r, fg, bg, AttrNone)
		}
	}
}

// SetBg changes only the background of a local cell
func (v *Viewport) SetBg(x, y int, bg RGB) {
	rect, buf := v.target(x, y)
	if rect.Empty() {
		return
	}
	for sy := rect.Y; sy < rect.Y+rect.H; sy++ {
		for sx := rect.X; sx < rect.X+rect.W; sx++ {
			buf.SetBg(sx, sy, bg)
		}
	}
}

// Fill paints every local cell with spaces on bg
func (v *Viewport) Fill(bg RGB) {
	for y := 0; y < v.h; y++ {
		for x := 0; x < v.w; x++ {
			v.SetWithBg(x, y, ' ', bg, bg)
		}
	}
}

// Text renders a string from (x,y), advancing by display width, clipped at the edge
// Returns the column after the last rune
func (v *Viewport) Text(x, y int, s string, fg RGB) int {
	return v.TextAttr(x, y, s, fg, AttrNone)
}

// TextAttr renders a string with attributes
func (v *Viewport) TextAttr(x, y int, s string, fg RGB, attrs Attr) int {
	col := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col >= v.w {
			break
		}
		v.SetAttr(col, y, ch, fg, attrs)
		col += w
	}
	return col
}

// Line draws a straight line between two local points (Bresenham)
func (v *Viewport) Line(x0, y0, x1, y1 int, r rune, fg RGB) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		v.Set(x0, y0, r, fg)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// LineF draws a line between float endpoints, rounding to the nearest cell
func (v *Viewport) LineF(x0, y0, x1, y1 float64, r rune, fg RGB) {
	v.Line(round(x0), round(y0), round(x1), round(y1), r, fg)
}

// HLine draws a horizontal run of r across the full width at row y
func (v *Viewport) HLine(y int, r rune, fg RGB) {
	for x := 0; x < v.w; x++ {
		v.Set(x, y, r, fg)
	}
}

// VLine draws a vertical run of r across the full height at column x
func (v *Viewport) VLine(x int, r rune, fg RGB) {
	for y := 0; y < v.h; y++ {
		v.Set(x, y, r, fg)
	}
}

// FillRect paints a local rectangle with rune r
func (v *Viewport) FillRect(x, y, w, h int, r rune, fg RGB) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			v.Set(xx, yy, r, fg)
		}
	}
}

// Ellipse plots the outline of an axis-aligned ellipse centered at (cx,cy)
// Radii are in local cells per axis
func (v *Viewport) Ellipse(cx, cy, rx, ry float64, r rune, fg RGB) {
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	steps := int(2*math.Pi*math.Max(rx, ry)) * 2
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		v.Set(round(cx+math.Cos(a)*rx), round(cy+math.Sin(a)*ry), r, fg)
	}
}

// Circle plots a circle of radius measured in columns, corrected for cell aspect
func (v *Viewport) Circle(cx, cy, radius float64, r rune, fg RGB) {
	v.Ellipse(cx, cy, radius, radius/CellAspect, r, fg)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}
