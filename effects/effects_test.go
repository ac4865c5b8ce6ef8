package effects

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/hollywood/cursor"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

// rig is a bound buffer with one viewport away from the edges
type rig struct {
	buf *render.Buffer
	vp  *render.Viewport
	cur *cursor.Cursor
	ctx plugin.Context
}

func newRig(w, h int) *rig {
	buf := render.NewBuffer(w+10, h+6)
	layer := render.NewLayer()
	layer.Bind(buf)
	vp := layer.Viewport(5, 3, w, h)
	cur := cursor.New()
	rng := rand.New(rand.NewPCG(7, 11))
	return &rig{
		buf: buf,
		vp:  vp,
		cur: cur,
		ctx: plugin.Context{Viewport: vp, Width: w, Height: h, Cursor: cur, Rand: rng.Float64},
	}
}

// run clears and updates like the engine frame does
func (r *rig) run(t *testing.T, p plugin.Plugin, frames int, dt float64) {
	t.Helper()
	for i := range frames {
		r.buf.Clear()
		if err := p.Update(dt, plugin.AuxState{Frame: uint64(i)}); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
}

func newEffect(t *testing.T, name string) plugin.Plugin {
	t.Helper()
	reg := plugin.NewRegistry()
	if err := RegisterAll(reg.Register); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	factory, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	p, err := factory()
	if err != nil {
		t.Fatalf("factory %s: %v", name, err)
	}
	return p
}

func TestRegisterAll(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := RegisterAll(reg.Register); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if reg.Len() != len(Names) {
		t.Fatalf("registered %d, want %d", reg.Len(), len(Names))
	}
	for _, name := range Names {
		f, ok := reg.Lookup(name)
		if !ok || f == nil {
			t.Errorf("%s missing", name)
		}
	}

	err := RegisterAll(reg.Register)
	if !errors.Is(err, plugin.ErrDuplicatePlugin) {
		t.Errorf("second RegisterAll = %v, want ErrDuplicatePlugin", err)
	}
}

func TestEffectsDrawInsideViewport(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			r := newRig(40, 16)
			p := newEffect(t, name)
			if err := p.Init(r.ctx); err != nil {
				t.Fatalf("Init: %v", err)
			}
			r.run(t, p, 120, 1.0/30)

			rect := r.vp.ScreenRect()
			w, h := r.buf.Size()
			drawn := 0
			for y := range h {
				for x := range w {
					c := r.buf.Get(x, y)
					if rect.Contains(x, y) {
						if c.Rune != ' ' {
							drawn++
						}
						continue
					}
					if c.Rune != ' ' {
						t.Fatalf("cell (%d,%d) outside viewport holds %q", x, y, c.Rune)
					}
				}
			}
			if drawn == 0 {
				t.Error("nothing drawn inside viewport")
			}

			p.Destroy()
		})
	}
}

func TestInitWithoutViewport(t *testing.T) {
	for _, name := range Names {
		p := newEffect(t, name)
		if err := p.Init(plugin.Context{Width: 10, Height: 5}); err == nil {
			t.Errorf("%s: Init without viewport should fail", name)
		}
	}
}

func TestEffectsSurviveTinyViewport(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			r := newRig(1, 1)
			p := newEffect(t, name)
			if err := p.Init(r.ctx); err != nil {
				t.Fatalf("Init: %v", err)
			}
			r.run(t, p, 30, 0.1)
		})
	}
}

func TestLogHistoryCappedToHeight(t *testing.T) {
	r := newRig(60, 5)
	l := NewLog()
	l.now = func() time.Time { return time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC) }
	if err := l.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := l.Lines(); len(got) != 1 || got[0] != "[13:04:05] SYSTEM READY." {
		t.Fatalf("initial lines = %q", got)
	}

	r.run(t, l, 200, 0.1)
	lines := l.Lines()
	if len(lines) != 5 {
		t.Fatalf("history = %d lines, want 5", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[13:04:05] ") {
			t.Errorf("line %q lacks timestamp", line)
		}
	}
}

func TestHexCursorStaysOnByteField(t *testing.T) {
	r := newRig(50, 12)
	x := NewHex()
	if err := x.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !r.cur.Enabled() || r.cur.Shape() != cursor.ShapeBlock {
		t.Fatalf("cursor enabled=%v shape=%v", r.cur.Enabled(), r.cur.Shape())
	}
	if len(x.lines) != 12 || !strings.HasPrefix(x.lines[0], "00001000  ") {
		t.Fatalf("first line = %q", x.lines[0])
	}

	moved := false
	for range 300 {
		r.run(t, x, 1, hexScrollSec)
		cx, cy := r.cur.Position()
		if cx < hexDumpColumn || cx >= hexDumpColumn+hexDumpWidth || cy < 0 || cy >= 12 {
			t.Fatalf("cursor at (%d,%d) off the byte field", cx, cy)
		}
		if cx != hexDumpColumn || cy != 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("cursor never moved")
	}

	x.Destroy()
	if r.cur.Enabled() {
		t.Error("Destroy should disable the cursor")
	}
}

func TestBiosLoops(t *testing.T) {
	r := newRig(40, 14)
	b := NewBios()
	if err := b.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if r.cur.Shape() != cursor.ShapeUnderline || !r.cur.Enabled() {
		t.Fatal("bios should enable an underline cursor")
	}

	r.run(t, b, len(BiosLines), biosLineSec)
	if b.Shown() != len(BiosLines) {
		t.Fatalf("shown = %d, want %d", b.Shown(), len(BiosLines))
	}
	if cx, cy := r.cur.Position(); cx != 0 || cy != len(BiosLines) {
		t.Errorf("cursor at (%d,%d), want (0,%d)", cx, cy, len(BiosLines))
	}

	r.run(t, b, 2, biosHoldSec/2)
	if b.Shown() != 0 {
		t.Errorf("shown after hold = %d, want 0", b.Shown())
	}
}

func TestSpectrumLevelsBounded(t *testing.T) {
	r := newRig(70, 12)
	s := NewSpectrum()
	if err := s.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for range 500 {
		r.run(t, s, 1, 0.05)
		for i, v := range s.Values() {
			if v < spectrumFloor-1e-9 || v > spectrumCeiling+1e-9 {
				t.Fatalf("band %d = %f out of range", i, v)
			}
		}
	}
}

func TestGraphSamplesBounded(t *testing.T) {
	r := newRig(60, 12)
	g := NewGraph()
	if err := g.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for range 1000 {
		r.run(t, g, 1, graphSampleSec)
		cpu, ram := g.Latest()
		if cpu < 0.05 || cpu > 0.95 {
			t.Fatalf("cpu = %f", cpu)
		}
		if ram < 0.1 || ram > 0.95 {
			t.Fatalf("ram = %f", ram)
		}
	}
	if len(g.cpu) != graphPoints || len(g.ram) != graphPoints {
		t.Errorf("series lengths %d/%d", len(g.cpu), len(g.ram))
	}
}

func TestRadarTargetsStayOnMap(t *testing.T) {
	r := newRig(40, 12)
	m := NewRadar()
	if err := m.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for range 600 {
		r.run(t, m, 1, 0.1)
		for _, p := range m.Targets() {
			if p[0] < 0 || p[0] >= 40 || p[1] < 0 || p[1] >= 12 {
				t.Fatalf("target at %v left the map", p)
			}
		}
	}
	for _, tg := range m.targets {
		if !strings.HasPrefix(tg.label, "TRGT-") || len(tg.label) != 9 {
			t.Errorf("label %q", tg.label)
		}
	}
}

func TestGlobeSpins(t *testing.T) {
	r := newRig(40, 16)
	g := NewGlobe()
	if err := g.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r.run(t, g, 10, 0.1)
	if got := g.Angle(); got < 0.49 || got > 0.51 {
		t.Errorf("angle = %f, want 0.5", got)
	}
}

func TestMatrixTrailFadesToBackground(t *testing.T) {
	m := NewMatrix()
	if got := m.trailColor(0); got != render.RGBWhite {
		t.Errorf("head = %+v, want white", got)
	}
	if got := m.trailColor(1); got != render.RGBBackground {
		t.Errorf("tail end = %+v, want background %+v", got, render.RGBBackground)
	}
	mid := m.trailColor(0.5)
	if mid.G <= render.RGBBackground.G || mid == render.RGBWhite {
		t.Errorf("mid trail = %+v, want a green between head and background", mid)
	}
}

func TestSpectrumPeakGlow(t *testing.T) {
	r := newRig(70, 11)
	s := NewSpectrum()
	if err := s.Init(r.ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for i := range s.values {
		s.values[i] = spectrumCeiling
		s.targets[i] = spectrumCeiling
	}
	r.run(t, s, 1, 0)

	// 10 segment rows, 9 lit at the ceiling, bar 0 starts after the dB axis
	rect := r.vp.ScreenRect()
	cell := func(seg int) render.Cell {
		return r.buf.Get(rect.X+spectrumAxisCols, rect.Y+9-seg)
	}
	if got := cell(0).Fg; got != render.RGBPhosphorMid {
		t.Errorf("bottom segment = %+v, want plain lit %+v", got, render.RGBPhosphorMid)
	}
	top := cell(8).Fg
	if top.G != 255 || top.R == 0 {
		t.Errorf("top lit segment = %+v, want glow added over %+v", top, render.RGBPhosphorMid)
	}
	if got := cell(9).Rune; got != '░' {
		t.Errorf("unlit segment rune = %q", got)
	}
}
