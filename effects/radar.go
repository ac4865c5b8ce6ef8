package effects

import (
	"fmt"
	"math"

	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const (
	radarTargets    = 5
	radarGridCols   = 10
	radarGridRows   = 5
	radarMaxSpeed   = 2.5 // columns per second per axis
	radarSweepRate  = 2.0 // radians per second
	radarSweepShare = 0.4
	radarVectorSec  = 0.5
)

// radarLand are the two landmass outlines as fractions of the map
var radarLand = [][4][2]float64{
	{{0.2, 0.3}, {0.4, 0.2}, {0.5, 0.5}, {0.3, 0.6}},
	{{0.6, 0.6}, {0.8, 0.5}, {0.9, 0.8}, {0.7, 0.9}},
}

// target positions are in column units on both axes, y is squashed on draw
type target struct {
	x, y   float64
	vx, vy float64
	label  string
}

// Radar draws a tactical map with tracked targets and a rotating sweep
type Radar struct {
	canvas
	targets []target
	sweep   float64
}

// NewRadar creates the map effect
func NewRadar() *Radar {
	return &Radar{}
}

func (r *Radar) Init(ctx plugin.Context) error {
	if err := r.bind(ctx); err != nil {
		return err
	}
	mw, mh := r.extent()
	r.targets = r.targets[:0]
	for range radarTargets {
		r.targets = append(r.targets, target{
			x:     r.rand() * mw,
			y:     r.rand() * mh,
			vx:    r.between(-radarMaxSpeed, radarMaxSpeed),
			vy:    r.between(-radarMaxSpeed, radarMaxSpeed),
			label: fmt.Sprintf("TRGT-%04d", r.intn(10000)),
		})
	}
	r.sweep = 0
	return nil
}

// extent returns the map size in column units
func (r *Radar) extent() (float64, float64) {
	return float64(r.w), float64(r.h) * render.CellAspect
}

// Targets returns the tracked targets' positions in cells
func (r *Radar) Targets() [][2]int {
	out := make([][2]int, len(r.targets))
	for i, t := range r.targets {
		out[i] = [2]int{int(t.x), int(t.y / render.CellAspect)}
	}
	return out
}

func (r *Radar) Update(dt float64, _ plugin.AuxState) error {
	mw, mh := r.extent()
	for i := range r.targets {
		t := &r.targets[i]
		t.x += t.vx * dt
		t.y += t.vy * dt
		if t.x < 0 || t.x >= mw {
			t.vx = -t.vx
			t.x = math.Max(0, math.Min(t.x, mw-1))
		}
		if t.y < 0 || t.y >= mh {
			t.vy = -t.vy
			t.y = math.Max(0, math.Min(t.y, mh-1))
		}
	}
	r.sweep = math.Mod(r.sweep+dt*radarSweepRate, 2*math.Pi)

	r.drawGrid()
	r.drawLand()
	r.drawSweep(mw, mh)
	r.drawTargets()
	return nil
}

func (r *Radar) drawGrid() {
	for x := 0; x < r.w; x += radarGridCols {
		r.vp.VLine(x, '┊', render.RGBPhosphorGrid)
	}
	for y := 0; y < r.h; y += radarGridRows {
		r.vp.HLine(y, '┈', render.RGBPhosphorGrid)
	}
}

func (r *Radar) drawLand() {
	w, h := float64(r.w-1), float64(r.h-1)
	for _, quad := range radarLand {
		for i, p := range quad {
			q := quad[(i+1)%len(quad)]
			r.vp.LineF(p[0]*w, p[1]*h, q[0]*w, q[1]*h, '▒', render.RGBPhosphorDim)
		}
	}
}

func (r *Radar) drawSweep(mw, mh float64) {
	cx, cy := mw/2, mh/2
	radius := radarSweepShare * math.Min(mw, mh)
	r.vp.Circle(cx, cy/render.CellAspect, radius, '·', render.RGBPhosphorFaint)
	ex := cx + math.Cos(r.sweep)*radius
	ey := cy + math.Sin(r.sweep)*radius
	r.vp.LineF(cx, cy/render.CellAspect, ex, ey/render.CellAspect, '•', render.RGBPhosphor)
}

func (r *Radar) drawTargets() {
	for _, t := range r.targets {
		x, y := t.x, t.y/render.CellAspect
		hx := t.x + t.vx*radarVectorSec
		hy := (t.y + t.vy*radarVectorSec) / render.CellAspect
		r.vp.LineF(x, y, hx, hy, '·', render.RGBPhosphorDim)
		r.vp.Set(int(x), int(y), '◎', render.RGBAlert)
		r.vp.Text(int(x)+2, int(y), t.label, render.RGBPhosphorBright)
	}
}
