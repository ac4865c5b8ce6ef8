package render

import "math"

// Rect is an integer cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell (x,y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles, zero Rect if disjoint
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Transform maps reference-space coordinates to screen cells
// screen = offset + ref*scale, applied per axis
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Identity returns a transform that leaves coordinates unchanged
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// IsIdentity reports whether the transform is a no-op
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Apply maps a reference-space point to screen space
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.OffsetX + x*t.ScaleX, t.OffsetY + y*t.ScaleY
}

// Rect projects a reference-space rectangle to the screen cells it covers
// Edges are floored so adjacent rectangles tile without gaps or overlap
func (t Transform) Rect(x, y, w, h float64) Rect {
	x0, y0 := t.Apply(x, y)
	x1, y1 := t.Apply(x+w, y+h)
	r := Rect{
		X: int(math.Floor(x0)),
		Y: int(math.Floor(y0)),
	}
	r.W = int(math.Floor(x1)) - r.X
	r.H = int(math.Floor(y1)) - r.Y
	return r
}

// Cell projects a single reference cell, always at least one screen cell wide
// so content stays visible when scaled down
func (t Transform) Cell(x, y float64) Rect {
	r := t.Rect(x, y, 1, 1)
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}
