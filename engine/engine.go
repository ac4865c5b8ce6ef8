// Package engine runs the desktop: the boot/run state machine, layout, presets and
// the per-tick ordering of plugin and window updates.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/hollywood/audio"
	"github.com/lixenwraith/hollywood/boot"
	"github.com/lixenwraith/hollywood/config"
	"github.com/lixenwraith/hollywood/constants"
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
	"github.com/lixenwraith/hollywood/window"
)

// ErrNoSurface is returned by Init when no usable rendering surface is supplied
var ErrNoSurface = errors.New("no rendering surface")

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger shared by every component
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTimeProvider sets the clock read by Frame
func WithTimeProvider(tp core.TimeProvider) Option {
	return func(e *Engine) {
		if tp != nil {
			e.clock = tp
		}
	}
}

// WithAudio sets the boot sound player
func WithAudio(p audio.Player) Option {
	return func(e *Engine) {
		if p != nil {
			e.audio = p
		}
	}
}

// WithRand sets the random source handed to plugins
func WithRand(fn func() float64) Option {
	return func(e *Engine) {
		if fn != nil {
			e.rand = fn
		}
	}
}

// WithBootOptions adds options applied to every boot sequence
func WithBootOptions(opts ...boot.Option) Option {
	return func(e *Engine) {
		e.bootOpts = append(e.bootOpts, opts...)
	}
}

// Engine is the orchestration root
// All methods run on the host's main goroutine
type Engine struct {
	// ===== Collaborators =====
	cfg     *config.Manager
	logger  *zap.Logger
	clock   core.TimeProvider
	audio   audio.Player
	rand    func() float64
	plugins *plugin.Manager
	windows *window.Manager

	// ===== State Machine =====
	phase    Phase
	boot     *boot.Sequence
	bootOpts []boot.Option
	preset   string

	// ===== Surface =====
	surface       Surface
	buf           *render.Buffer
	width, height int
	composed      bool // running frame chrome drawn since the last clear

	// ===== Tick =====
	lastTick time.Time
	ticked   bool
}

// New creates an engine in the booting phase with windows hidden
func New(cfg *config.Manager, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.NewManager()
	}
	e := &Engine{
		cfg:    cfg,
		logger: zap.NewNop(),
		clock:  core.RealTime{},
		audio:  audio.Silent{},
		rand:   rand.Float64,
		buf:    render.NewBuffer(0, 0),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.plugins = plugin.NewManager(plugin.NewRegistry(), e.logger)
	e.windows = window.NewManager(e.plugins,
		window.WithLogger(e.logger),
		window.WithRand(e.rand),
	)
	e.windows.Bind(e.buf)
	e.windows.SetVisible(false)
	e.startBoot()
	return e
}

// Init binds the rendering surface, the only fatal error path of the engine
func (e *Engine) Init(surface Surface) error {
	if surface == nil {
		return ErrNoSurface
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrNoSurface, w, h)
	}
	e.surface = surface
	e.HandleResize(w, h)
	e.logger.Info("engine initialized", zap.Int("width", w), zap.Int("height", h))
	return nil
}

// LoadConfig loads the configuration and recomputes the layout
// On failure the engine keeps running with its current layout
func (e *Engine) LoadConfig(path string) error {
	if err := e.cfg.Load(path); err != nil {
		e.logger.Error("config load failed, layout unscaled", zap.String("path", path), zap.Error(err))
		return err
	}
	e.relayout()
	return nil
}

// LoadConfigData loads an in-memory configuration and recomputes the layout
func (e *Engine) LoadConfigData(name string, data []byte) error {
	if err := e.cfg.LoadData(name, data); err != nil {
		return err
	}
	e.relayout()
	return nil
}

// ReloadConfig rereads path, bypassing the cache, and re-applies the current preset
func (e *Engine) ReloadConfig(path string) error {
	if err := e.cfg.LoadFile(path); err != nil {
		e.logger.Error("config reload failed, keeping current layout", zap.String("path", path), zap.Error(err))
		return err
	}
	e.relayout()
	if e.preset == "" {
		return nil
	}
	return e.ApplyPreset(e.preset)
}

// RegisterPlugin adds a plugin factory, duplicates are rejected
func (e *Engine) RegisterPlugin(name string, factory plugin.Factory) error {
	return e.plugins.Register(name, factory)
}

// ApplyPreset replaces every window with the named preset's windows
// An unknown preset leaves the current windows untouched
func (e *Engine) ApplyPreset(name string) error {
	p, err := e.cfg.Preset(name)
	if err != nil {
		e.logger.Warn("preset not applied", zap.String("preset", name), zap.Error(err))
		return err
	}

	e.windows.Clear()
	e.composed = false
	for _, w := range p.Windows {
		if _, err := e.windows.CreateWindow(windowSpec(w)); err != nil {
			e.logger.Error("window creation failed", zap.String("preset", name), zap.String("window", w.ID), zap.Error(err))
		}
	}
	e.preset = name
	e.logger.Info("preset applied",
		zap.String("preset", name),
		zap.Int("windows", e.windows.Len()),
		zap.Int("plugins", e.plugins.ActiveCount()),
	)
	return nil
}

// Reboot hides the desktop and replays the boot sequence, no-op while booting
func (e *Engine) Reboot() {
	if e.phase == PhaseBooting {
		return
	}
	e.logger.Info("rebooting")
	e.windows.SetVisible(false)
	e.startBoot()
}

func (e *Engine) startBoot() {
	e.phase = PhaseBooting
	opts := []boot.Option{
		boot.WithStartHook(e.audio.Beep),
		boot.WithLineHook(func(line string) {
			if line != "" {
				e.audio.Click()
			}
		}),
	}
	opts = append(opts, e.bootOpts...)
	e.boot = boot.New(e.finishBoot, opts...)
}

// finishBoot is the boot completion callback
func (e *Engine) finishBoot() {
	e.phase = PhaseRunning
	e.boot = nil
	e.composed = false
	e.windows.SetVisible(true)
	e.logger.Info("boot complete", zap.Int("windows", e.windows.Len()))
}

// HandleResize adopts a new surface size and recomputes the layout
func (e *Engine) HandleResize(w, h int) {
	e.width, e.height = max(w, 0), max(h, 0)
	e.buf.Resize(e.width, e.height)
	e.composed = false
	e.relayout()
}

// ToggleScaling flips between letterbox and stretch layout
func (e *Engine) ToggleScaling() {
	letterbox := !e.cfg.Global().MaintainAspectRatio
	e.cfg.SetMaintainAspectRatio(letterbox)
	e.relayout()
	mode := "stretch"
	if letterbox {
		mode = "letterbox"
	}
	e.logger.Info("scaling mode changed", zap.String("mode", mode))
}

// relayout applies the layout policy to the window collection
func (e *Engine) relayout() {
	g := e.cfg.Global()
	t := render.Identity()
	if g.HasReference() {
		t = ComputeLayout(g.ReferenceResolution, float64(e.width), float64(e.height), g.MaintainAspectRatio)
	}
	e.windows.SetScale(t.ScaleX, t.ScaleY)
	e.windows.SetPosition(t.OffsetX, t.OffsetY)
	e.composed = false
}

// Frame runs one tick at the provider's current time and presents the result
func (e *Engine) Frame() {
	e.Tick(e.clock.Now())
	e.Render()
}

// Tick advances the engine by the wall time since the previous tick
// The first tick advances by zero, long gaps are capped
func (e *Engine) Tick(now time.Time) {
	dt := 0.0
	if e.ticked {
		dt = now.Sub(e.lastTick).Seconds()
	}
	e.lastTick = now
	e.ticked = true
	e.Update(min(max(dt, 0), constants.MaxFrameDelta.Seconds()))
}

// Update advances by dt seconds
// Booting advances the boot sequence only; running updates every plugin before
// windows evaluate cursors and cycling
func (e *Engine) Update(dt float64) {
	if e.phase == PhaseBooting {
		if e.boot != nil {
			e.boot.Update(dt)
		}
		return
	}

	e.compose()
	e.plugins.Update(dt)
	e.windows.Update(dt)
}

// compose clears the frame and paints window chrome for plugins to draw over
func (e *Engine) compose() {
	e.buf.Clear()
	e.windows.DrawChrome()
	e.composed = true
}

// Render finishes the frame and presents it on the surface
func (e *Engine) Render() {
	if e.phase == PhaseBooting {
		e.buf.Clear()
		if e.boot != nil {
			e.boot.Draw(e.buf)
		}
	} else {
		if !e.composed {
			e.compose()
		}
		e.windows.DrawCursors()
	}
	e.composed = false
	if e.surface != nil {
		e.surface.Show(e.buf)
	}
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Windows returns the window manager
func (e *Engine) Windows() *window.Manager {
	return e.windows
}

// Plugins returns the plugin manager
func (e *Engine) Plugins() *plugin.Manager {
	return e.plugins
}

// Boot returns the running boot sequence, nil once running
func (e *Engine) Boot() *boot.Sequence {
	return e.boot
}

// CurrentPreset returns the last applied preset name
func (e *Engine) CurrentPreset() string {
	return e.preset
}

// Buffer returns the frame buffer
func (e *Engine) Buffer() *render.Buffer {
	return e.buf
}

// Config returns the configuration manager
func (e *Engine) Config() *config.Manager {
	return e.cfg
}

// Shutdown destroys every window and releases audio
func (e *Engine) Shutdown() {
	e.windows.Clear()
	e.audio.Close()
	e.logger.Info("engine stopped", zap.Uint64("plugins_destroyed", e.plugins.Stats().Destroyed))
}

// windowSpec converts a resolved config window into a window spec
func windowSpec(w config.Window) window.Spec {
	return window.Spec{
		ID:    w.ID,
		X:     w.X,
		Y:     w.Y,
		W:     w.Width,
		H:     w.Height,
		Title: w.Title,
		Style: window.Style{
			BorderColor: render.RGBFromHex(w.Style.BorderColor),
			BorderWidth: w.Style.BorderWidth,
			BgColor:     render.RGBFromHex(w.Style.BgColor),
			TitleColor:  render.RGBFromHex(w.Style.TitleColor),
			Line:        render.ParseLineType(w.Style.Line),
		},
		Plugins:       w.Plugins,
		CycleInterval: w.CycleInterval,
	}
}
