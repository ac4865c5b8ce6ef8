package effects

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const (
	graphPoints    = 60
	graphSampleSec = 0.1
	graphGridRows  = 5
	graphGridCols  = 10
	// graphMemoryGB scales the memory fraction into the label
	graphMemoryGB = 16
)

var rgbGraphRAM = render.RGB{R: 0, G: 136, B: 0}

// Graph plots rolling CPU and memory load over a grid
type Graph struct {
	canvas
	cpu    []float64
	ram    []float64
	sample core.Timer
}

// NewGraph creates the load graph effect
func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) Init(ctx plugin.Context) error {
	if err := g.bind(ctx); err != nil {
		return err
	}
	g.cpu = make([]float64, graphPoints)
	g.ram = make([]float64, graphPoints)
	for i := range graphPoints {
		g.cpu[i] = 0.3
		g.ram[i] = 0.4
	}
	g.sample = core.NewTimer(graphSampleSec)
	return nil
}

// Latest returns the newest CPU and memory samples
func (g *Graph) Latest() (cpu, ram float64) {
	return g.cpu[len(g.cpu)-1], g.ram[len(g.ram)-1]
}

func (g *Graph) step() {
	cpu := g.cpu[len(g.cpu)-1] + g.between(-0.075, 0.075)
	cpu = math.Max(0.05, math.Min(0.95, cpu))

	ram := g.ram[len(g.ram)-1] + g.rand()*0.02 - 0.005
	if ram > 0.9 {
		ram = 0.3
	}
	ram = math.Max(0.1, math.Min(0.95, ram))

	g.cpu = append(g.cpu[1:], cpu)
	g.ram = append(g.ram[1:], ram)
}

func (g *Graph) Update(dt float64, _ plugin.AuxState) error {
	var fired bool
	if g.sample, fired = g.sample.Step(dt); fired {
		g.step()
	}

	// Top row carries the labels, the plot fills the rest
	top, plotH := 1, g.h-1
	if plotH <= 1 || g.w <= 1 {
		return nil
	}
	for i := 0; i <= graphGridRows; i++ {
		g.vp.Line(0, top+i*(plotH-1)/graphGridRows, g.w-1, top+i*(plotH-1)/graphGridRows, '┈', render.RGBPhosphorGrid)
	}
	for i := 0; i <= graphGridCols; i++ {
		x := i * (g.w - 1) / graphGridCols
		g.vp.Line(x, top, x, top+plotH-1, '┊', render.RGBPhosphorGrid)
	}

	g.plot(g.ram, top, plotH, '•', rgbGraphRAM)
	g.plot(g.cpu, top, plotH, '•', render.RGBPhosphorBright)

	cpu, ram := g.Latest()
	end := g.vp.Text(0, 0, fmt.Sprintf("CPU: %d%%", int(cpu*100)), render.RGBPhosphorBright)
	end = g.vp.Text(end+2, 0, fmt.Sprintf("MEM: %.1fGB", ram*graphMemoryGB), rgbGraphRAM)
	g.vp.Text(end+2, 0, fmt.Sprintf("AVG: %d%%", int(stat.Mean(g.cpu, nil)*100)), render.RGBPhosphorDim)
	return nil
}

// plot joins consecutive samples left to right, 1.0 at the top row
func (g *Graph) plot(series []float64, top, height int, r rune, fg render.RGB) {
	xstep := float64(g.w-1) / float64(len(series)-1)
	yof := func(v float64) float64 {
		return float64(top) + (1-v)*float64(height-1)
	}
	for i := 1; i < len(series); i++ {
		g.vp.LineF(float64(i-1)*xstep, yof(series[i-1]), float64(i)*xstep, yof(series[i]), r, fg)
	}
}
