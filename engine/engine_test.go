package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/hollywood/boot"
	"github.com/lixenwraith/hollywood/config"
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const testConfig = `
global:
  referenceResolution: {width: 80, height: 24}
  maintainAspectRatio: true
presets:
  default:
    windows:
      - {id: left, x: 0, y: 0, width: 40, height: 12, plugin: [alpha, beta], cycleInterval: 1000}
      - {id: right, x: 40, y: 0, width: 40, height: 12, plugin: alpha}
  minimal:
    windows:
      - {id: solo, x: 10, y: 5, width: 30, height: 10, plugin: beta, style: {borderColor: "FF0000"}}
  faulty:
    windows:
      - {id: bad, x: 0, y: 0, width: 20, height: 10, plugin: faulty}
      - {id: good, x: 20, y: 0, width: 20, height: 10, plugin: alpha}
`

// fakeSurface records presented frames
type fakeSurface struct {
	w, h  int
	shows int
	last  *render.Buffer
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) Show(buf *render.Buffer) {
	s.shows++
	s.last = buf
}

// countingPlayer records boot sounds
type countingPlayer struct {
	beeps, clicks, closes int
}

func (p *countingPlayer) Beep()  { p.beeps++ }
func (p *countingPlayer) Click() { p.clicks++ }
func (p *countingPlayer) Close() { p.closes++ }

// stubPlugin paints its marker into the first content cell every update
type stubPlugin struct {
	plugin.Base
	marker rune
	vp     *render.Viewport
	fail   bool
}

func (s *stubPlugin) Init(ctx plugin.Context) error {
	s.vp = ctx.Viewport
	return nil
}

func (s *stubPlugin) Update(dt float64, aux plugin.AuxState) error {
	if s.fail {
		return errors.New("frame fault")
	}
	s.vp.Set(0, 0, s.marker, render.RGBWhite)
	return nil
}

func stub(marker rune, fail bool) plugin.Factory {
	return func() (plugin.Plugin, error) {
		return &stubPlugin{marker: marker, fail: fail}, nil
	}
}

// fastBoot shortens the boot log to one line and short intervals
var fastBoot = WithBootOptions(boot.WithLines([]string{"POST"}), boot.WithTiming(0.1, 0.1))

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeSurface, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	e := New(config.NewManager(), append([]Option{fastBoot}, opts...)...)
	for name, f := range map[string]plugin.Factory{
		"alpha":  stub('a', false),
		"beta":   stub('b', false),
		"faulty": stub('f', true),
	} {
		if err := e.RegisterPlugin(name, f); err != nil {
			t.Fatal(err)
		}
	}
	surface := &fakeSurface{w: 160, h: 48}
	if err := e.Init(surface); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadConfig(path); err != nil {
		t.Fatal(err)
	}
	return e, surface, path
}

// finishBootSequence steps until the engine is running
func finishBootSequence(t *testing.T, e *Engine) {
	t.Helper()
	for i := 0; i < 100 && e.Phase() == PhaseBooting; i++ {
		e.Update(0.1)
	}
	if e.Phase() != PhaseRunning {
		t.Fatal("boot did not finish")
	}
}

func TestInitRequiresSurface(t *testing.T) {
	e := New(nil)
	if err := e.Init(nil); !errors.Is(err, ErrNoSurface) {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
	if err := e.Init(&fakeSurface{}); !errors.Is(err, ErrNoSurface) {
		t.Errorf("zero size err = %v, want ErrNoSurface", err)
	}
}

func TestBootToRunningOnce(t *testing.T) {
	player := &countingPlayer{}
	e, _, _ := newTestEngine(t, WithAudio(player))
	if e.Phase() != PhaseBooting || e.Windows().Visible() {
		t.Fatalf("initial phase = %v visible = %v", e.Phase(), e.Windows().Visible())
	}
	if err := e.ApplyPreset("default"); err != nil {
		t.Fatal(err)
	}

	transitions := 0
	prev := e.Phase()
	for i := 0; i < 20; i++ {
		e.Update(0.1)
		if prev == PhaseBooting && e.Phase() == PhaseRunning {
			transitions++
		}
		prev = e.Phase()
	}
	if transitions != 1 || e.Phase() != PhaseRunning {
		t.Fatalf("transitions = %d phase = %v", transitions, e.Phase())
	}
	if !e.Windows().Visible() || e.Boot() != nil {
		t.Errorf("windows hidden or boot retained after boot")
	}
	if player.beeps != 1 || player.clicks != 1 {
		t.Errorf("boot sounds beeps=%d clicks=%d", player.beeps, player.clicks)
	}
}

func TestBootingFreezesPlugins(t *testing.T) {
	e, _, _ := newTestEngine(t, WithBootOptions(boot.WithTiming(1, 1)))
	_ = e.ApplyPreset("default")
	for i := 0; i < 5; i++ {
		e.Update(0.1)
	}
	if e.Phase() != PhaseBooting {
		t.Fatalf("phase = %v", e.Phase())
	}
	w, _ := e.Windows().Window("left")
	if w.CycleTimer.Elapsed != 0 {
		t.Errorf("cycling advanced while booting: %v", w.CycleTimer.Elapsed)
	}
	e.Render()
	if got := e.Buffer().Get(2, 1).Rune; got != '_' {
		t.Errorf("boot caret = %q, desktop drawn while booting", got)
	}
}

func TestRebootIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_ = e.ApplyPreset("default")

	// A reboot while booting keeps the running sequence
	seq := e.Boot()
	e.Reboot()
	if e.Boot() != seq {
		t.Fatal("reboot while booting replaced the sequence")
	}

	finishBootSequence(t, e)
	active := e.Plugins().ActiveCount()

	e.Reboot()
	if e.Phase() != PhaseBooting || e.Windows().Visible() {
		t.Fatalf("phase = %v visible = %v", e.Phase(), e.Windows().Visible())
	}
	seq = e.Boot()
	e.Reboot()
	if e.Boot() != seq {
		t.Error("second reboot restarted the sequence")
	}
	if e.Plugins().ActiveCount() != active || e.Windows().Len() != 2 {
		t.Errorf("reboot changed windows: active=%d windows=%d", e.Plugins().ActiveCount(), e.Windows().Len())
	}

	finishBootSequence(t, e)
	if !e.Windows().Visible() {
		t.Error("windows hidden after second boot")
	}
}

func TestComputeLayout(t *testing.T) {
	ref := config.Size{Width: 800, Height: 600}
	tests := []struct {
		name      string
		ref       config.Size
		vw, vh    float64
		letterbox bool
		want      render.Transform
	}{
		{"letterbox wide", ref, 1600, 900, true, render.Transform{ScaleX: 1.5, ScaleY: 1.5, OffsetX: 200, OffsetY: 75}},
		{"stretch wide", ref, 1600, 900, false, render.Transform{ScaleX: 2, ScaleY: 1.5}},
		{"letterbox tall", ref, 800, 1200, true, render.Transform{ScaleX: 1, ScaleY: 1, OffsetY: 300}},
		{"letterbox exact", ref, 800, 600, true, render.Identity()},
		{"zero reference", config.Size{}, 1600, 900, true, render.Identity()},
		{"zero viewport", ref, 0, 900, false, render.Identity()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLayout(tt.ref, tt.vw, tt.vh, tt.letterbox)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeAndToggleScaling(t *testing.T) {
	e, _, _ := newTestEngine(t)

	// 160x48 over an 80x24 reference letterboxes at scale 2
	if tr := e.Windows().Transform(); tr.ScaleX != 2 || tr.ScaleY != 2 || tr.OffsetX != 0 {
		t.Fatalf("initial transform = %+v", tr)
	}

	e.HandleResize(200, 48)
	if tr := e.Windows().Transform(); tr.ScaleX != 2 || tr.OffsetX != 20 {
		t.Errorf("letterbox transform = %+v", tr)
	}
	if w, h := e.Buffer().Size(); w != 200 || h != 48 {
		t.Errorf("buffer size = %dx%d", w, h)
	}

	e.ToggleScaling()
	if e.Config().Global().MaintainAspectRatio {
		t.Fatal("toggle did not flip the policy")
	}
	if tr := e.Windows().Transform(); tr.ScaleX != 2.5 || tr.ScaleY != 2 || tr.OffsetX != 0 {
		t.Errorf("stretch transform = %+v", tr)
	}
}

func TestLoadConfigFailureKeepsIdentity(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	e := New(nil, WithLogger(zap.New(obs)))
	_ = e.Init(&fakeSurface{w: 100, h: 40})

	err := e.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected load error")
	}
	if !e.Windows().Transform().IsIdentity() {
		t.Errorf("transform = %+v, want identity", e.Windows().Transform())
	}
	if logs.FilterMessage("config load failed, layout unscaled").Len() != 1 {
		t.Error("load failure not reported")
	}
	if err := e.ApplyPreset("default"); err == nil {
		t.Error("preset applied without config")
	}
}

func TestLoadConfigData(t *testing.T) {
	e := New(nil, fastBoot)
	if err := e.Init(&fakeSurface{w: 160, h: 48}); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadConfigData("inline.yaml", []byte(testConfig)); err != nil {
		t.Fatalf("LoadConfigData: %v", err)
	}
	if tr := e.Windows().Transform(); tr.ScaleX != 2 || tr.ScaleY != 2 {
		t.Errorf("transform = %+v, want scale 2", tr)
	}
	if err := e.LoadConfigData("bad.yaml", []byte("presets: [")); err == nil {
		t.Error("expected decode error")
	}
}

func TestApplyPreset(t *testing.T) {
	e, _, _ := newTestEngine(t)
	finishBootSequence(t, e)

	if err := e.ApplyPreset("default"); err != nil {
		t.Fatal(err)
	}
	if e.Windows().Len() != 2 || e.Plugins().ActiveCount() != 2 {
		t.Fatalf("windows=%d active=%d", e.Windows().Len(), e.Plugins().ActiveCount())
	}

	if err := e.ApplyPreset("nope"); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
	if e.Windows().Len() != 2 || e.CurrentPreset() != "default" {
		t.Errorf("unknown preset touched windows")
	}

	before := e.Plugins().Stats()
	if err := e.ApplyPreset("minimal"); err != nil {
		t.Fatal(err)
	}
	after := e.Plugins().Stats()
	if after.Destroyed-before.Destroyed != 2 {
		t.Errorf("destroyed %d instances on switch, want 2", after.Destroyed-before.Destroyed)
	}
	if e.Windows().Len() != 1 || e.Plugins().ActiveCount() != 1 {
		t.Errorf("residual state: windows=%d active=%d", e.Windows().Len(), e.Plugins().ActiveCount())
	}
	w, ok := e.Windows().Window("solo")
	if !ok {
		t.Fatal("solo window missing")
	}
	if w.Spec.Style.BorderColor != (render.RGB{R: 255}) {
		t.Errorf("border color = %+v", w.Spec.Style.BorderColor)
	}
}

func TestHandleCommand(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_ = e.ApplyPreset("default")

	if e.HandleCommand(Command{Kind: CmdApplyPreset, Preset: "minimal"}) {
		t.Error("command applied while booting")
	}
	if e.CurrentPreset() != "default" {
		t.Error("preset changed while booting")
	}

	finishBootSequence(t, e)
	if !e.HandleCommand(Command{Kind: CmdApplyPreset, Preset: "minimal"}) || e.CurrentPreset() != "minimal" {
		t.Error("apply preset command failed")
	}
	if e.HandleCommand(Command{Kind: CmdApplyPreset, Preset: "missing"}) {
		t.Error("unknown preset reported as applied")
	}

	letterbox := e.Config().Global().MaintainAspectRatio
	e.HandleCommand(Command{Kind: CmdToggleScaling})
	if e.Config().Global().MaintainAspectRatio == letterbox {
		t.Error("toggle scaling command ignored")
	}

	e.HandleCommand(Command{Kind: CmdReboot})
	if e.Phase() != PhaseBooting {
		t.Error("reboot command ignored")
	}
}

func TestTickClampsDelta(t *testing.T) {
	clock := core.NewMockTime(time.Unix(1000, 0))
	e, _, _ := newTestEngine(t, WithTimeProvider(clock))
	_ = e.ApplyPreset("default")
	finishBootSequence(t, e)
	w, _ := e.Windows().Window("left")

	e.Frame() // first tick advances by zero
	if w.CycleTimer.Elapsed != 0 {
		t.Fatalf("first tick advanced %v ms", w.CycleTimer.Elapsed)
	}

	clock.Advance(100 * time.Millisecond)
	e.Frame()
	if d := w.CycleTimer.Elapsed - 100; d > 1e-6 || d < -1e-6 {
		t.Errorf("elapsed = %v ms, want 100", w.CycleTimer.Elapsed)
	}

	// A suspended process resumes with one capped step
	clock.Advance(time.Hour)
	e.Frame()
	if d := w.CycleTimer.Elapsed - 350; d > 1e-6 || d < -1e-6 {
		t.Errorf("elapsed = %v ms, want 350", w.CycleTimer.Elapsed)
	}

	// Clock going backwards advances nothing
	clock.Advance(-time.Second)
	e.Frame()
	if d := w.CycleTimer.Elapsed - 350; d > 1e-6 || d < -1e-6 {
		t.Errorf("elapsed = %v ms after backwards step", w.CycleTimer.Elapsed)
	}
}

func TestCyclingThroughEngine(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_ = e.ApplyPreset("default")
	finishBootSequence(t, e)

	for i := 0; i < 10; i++ {
		e.Update(0.1)
	}
	if name, _ := e.Plugins().ActiveName("left"); name != "beta" {
		t.Errorf("after one interval active = %q, want beta", name)
	}
	for i := 0; i < 10; i++ {
		e.Update(0.1)
	}
	if name, _ := e.Plugins().ActiveName("left"); name != "alpha" {
		t.Errorf("after two intervals active = %q, want alpha", name)
	}
	if name, _ := e.Plugins().ActiveName("right"); name != "alpha" {
		t.Errorf("non-cycling window changed to %q", name)
	}
}

func TestFaultIsolationWithinTick(t *testing.T) {
	e, surface, _ := newTestEngine(t)
	_ = e.ApplyPreset("faulty")
	finishBootSequence(t, e)

	bad, _ := e.Windows().Window("bad")
	bad.Cursor.SetEnabled(true)

	e.Update(0.6)
	e.Render()

	if bad.Cursor.BlinkPhase() {
		t.Error("cursor did not blink in the faulting tick")
	}
	// good content origin (21,3) in reference space at scale 2
	if got := surface.last.Get(42, 6).Rune; got != 'a' {
		t.Errorf("healthy window cell = %q, want 'a'", got)
	}
	if e.Plugins().Faults("bad") != 1 {
		t.Errorf("faults = %d", e.Plugins().Faults("bad"))
	}

	e.Update(0.1)
	if _, ok := e.Windows().Window("bad"); !ok || e.Plugins().Active("bad") == nil {
		t.Error("faulting window evicted")
	}
	if e.Plugins().Faults("bad") != 2 {
		t.Errorf("faulting instance not retried, faults = %d", e.Plugins().Faults("bad"))
	}
}

func TestRenderBootAndDesktop(t *testing.T) {
	e, surface, _ := newTestEngine(t)
	_ = e.ApplyPreset("minimal")

	e.Update(0.1)
	e.Render()
	if surface.shows != 1 {
		t.Fatalf("shows = %d", surface.shows)
	}
	if got := surface.last.Get(2, 1).Rune; got != 'P' {
		t.Errorf("boot text cell = %q, want 'P'", got)
	}

	finishBootSequence(t, e)
	e.Update(0.1)
	e.Render()
	// solo window top-left (10,5) at scale 2
	if got := surface.last.Get(20, 10).Rune; got != '┌' {
		t.Errorf("window corner = %q", got)
	}
	if got := surface.last.Get(2, 1).Rune; got == 'P' {
		t.Error("boot text left on the desktop")
	}
}

func TestReloadConfigReappliesPreset(t *testing.T) {
	e, _, path := newTestEngine(t)
	_ = e.ApplyPreset("minimal")
	finishBootSequence(t, e)

	updated := `
global:
  referenceResolution: {width: 160, height: 48}
presets:
  minimal:
    windows:
      - {id: solo, x: 0, y: 0, plugin: alpha}
      - {id: extra, x: 50, y: 0, plugin: beta}
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.ReloadConfig(path); err != nil {
		t.Fatal(err)
	}
	if e.Windows().Len() != 2 || e.Plugins().ActiveCount() != 2 {
		t.Errorf("windows=%d active=%d", e.Windows().Len(), e.Plugins().ActiveCount())
	}
	if tr := e.Windows().Transform(); !tr.IsIdentity() {
		t.Errorf("transform = %+v, want identity for matching reference", tr)
	}

	if err := os.WriteFile(path, []byte("presets: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.ReloadConfig(path); err == nil {
		t.Error("expected reload error")
	}
	if e.Windows().Len() != 2 {
		t.Error("failed reload dropped windows")
	}
}

func TestReloadConfigIgnoresCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cache := filepath.Join(dir, "cache.yaml")
	for _, p := range []string{path, cache} {
		if err := os.WriteFile(p, []byte(testConfig), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	e := New(config.NewManager(config.WithCachePath(cache)), fastBoot)
	for name, f := range map[string]plugin.Factory{"alpha": stub('a', false), "beta": stub('b', false)} {
		if err := e.RegisterPlugin(name, f); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Init(&fakeSurface{w: 160, h: 48}); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadConfig(path); err != nil {
		t.Fatal(err)
	}
	if e.Config().Source() != cache {
		t.Fatalf("initial source = %q, want cache", e.Config().Source())
	}
	if err := e.ApplyPreset("minimal"); err != nil {
		t.Fatal(err)
	}
	finishBootSequence(t, e)

	edited := `
presets:
  minimal:
    windows:
      - {id: solo, x: 0, y: 0, plugin: alpha}
      - {id: extra, x: 50, y: 0, plugin: beta}
`
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.ReloadConfig(path); err != nil {
		t.Fatal(err)
	}
	if e.Config().Source() != path {
		t.Errorf("reload source = %q, want %q", e.Config().Source(), path)
	}
	if e.Windows().Len() != 2 {
		t.Errorf("windows = %d, the edit was not applied", e.Windows().Len())
	}
}

func TestShutdown(t *testing.T) {
	player := &countingPlayer{}
	e, _, _ := newTestEngine(t, WithAudio(player))
	_ = e.ApplyPreset("default")
	e.Shutdown()
	if e.Windows().Len() != 0 || e.Plugins().ActiveCount() != 0 {
		t.Error("shutdown left windows")
	}
	if player.closes != 1 {
		t.Errorf("audio closes = %d", player.closes)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseBooting.String() != "booting" || PhaseRunning.String() != "running" || Phase(9).String() != "unknown" {
		t.Error("phase names")
	}
}
