package effects

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const (
	globeSpin      = 0.5 // radians per second
	globeTilt      = 0.4
	globeShare     = 0.35
	globeRings     = 8
	globeSamples   = 48
)

// Globe draws a spinning wireframe sphere with hidden lines dimmed
type Globe struct {
	canvas
	angle float64
	mesh  []r3.Vec
	tilt  r3.Rotation
}

// NewGlobe creates the globe effect
func NewGlobe() *Globe {
	return &Globe{tilt: r3.NewRotation(globeTilt, r3.Vec{X: 1})}
}

func (g *Globe) Init(ctx plugin.Context) error {
	if err := g.bind(ctx); err != nil {
		return err
	}
	g.angle = 0
	g.mesh = g.mesh[:0]
	// Parallels, poles excluded
	for i := 1; i < globeRings; i++ {
		lat := math.Pi*float64(i)/globeRings - math.Pi/2
		for k := range globeSamples {
			lon := 2 * math.Pi * float64(k) / globeSamples
			g.mesh = append(g.mesh, sphere(lat, lon))
		}
	}
	// Meridians
	for i := range globeRings {
		lon := math.Pi * float64(i) / globeRings
		for k := range globeSamples {
			lat := 2 * math.Pi * float64(k) / globeSamples
			g.mesh = append(g.mesh, sphere(lat, lon))
		}
	}
	return nil
}

func sphere(lat, lon float64) r3.Vec {
	return r3.Vec{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Sin(lat),
		Z: math.Cos(lat) * math.Sin(lon),
	}
}

// Angle returns the current spin in radians
func (g *Globe) Angle() float64 {
	return g.angle
}

func (g *Globe) Update(dt float64, _ plugin.AuxState) error {
	g.angle = math.Mod(g.angle+dt*globeSpin, 2*math.Pi)

	cx := float64(g.w-1) / 2
	cy := float64(g.h-1) / 2
	radius := globeShare * math.Min(float64(g.w), float64(g.h)*render.CellAspect)
	spin := r3.NewRotation(g.angle, r3.Vec{Y: 1})

	// Back faces first so front points overwrite shared cells
	for pass := range 2 {
		for _, p := range g.mesh {
			q := g.tilt.Rotate(spin.Rotate(p))
			front := q.Z >= 0
			if front != (pass == 1) {
				continue
			}
			x := cx + q.X*radius
			y := cy - q.Y*radius/render.CellAspect
			if front {
				g.vp.Set(int(math.Round(x)), int(math.Round(y)), '•', render.RGBPhosphor)
			} else {
				g.vp.Set(int(math.Round(x)), int(math.Round(y)), '·', render.RGBPhosphorFaint)
			}
		}
	}
	g.vp.Circle(cx, cy, radius, 'o', render.RGBPhosphorMid)
	return nil
}
