package window

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/hollywood/constants"
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/cursor"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

// Option configures a Manager
type Option func(*Manager)

// WithRand sets the random source handed to plugins
func WithRand(fn func() float64) Option {
	return func(m *Manager) {
		if fn != nil {
			m.rand = fn
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHeaderHeight sets the title header rows between top border and content
func WithHeaderHeight(rows int) Option {
	return func(m *Manager) {
		m.header = max(rows, 0)
	}
}

// WithIDGenerator replaces the generator used for specs without an id
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// Manager owns the window collection and its shared coordinate space
// All windows live on one layer, so scale and position apply to the collection as a whole
type Manager struct {
	plugins *plugin.Manager
	layer   *render.Layer
	logger  *zap.Logger
	rand    func() float64
	newID   func() string
	header  int

	windows []*Window
	byID    map[string]*Window
}

// NewManager creates an empty manager instantiating plugins through pm
func NewManager(pm *plugin.Manager, opts ...Option) *Manager {
	m := &Manager{
		plugins: pm,
		layer:   render.NewLayer(),
		logger:  zap.NewNop(),
		rand:    rand.Float64,
		newID:   generateID,
		header:  constants.HeaderHeight,
		byID:    make(map[string]*Window),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("windows")
	return m
}

// generateID returns a short random window id
func generateID() string {
	return constants.GeneratedIDPrefix + uuid.NewString()[:8]
}

// Bind attaches the frame buffer every window draws into
func (m *Manager) Bind(buf *render.Buffer) {
	m.layer.Bind(buf)
}

// CreateWindow builds a window from spec and loads its first plugin
// A plugin load failure leaves the window without an active instance, it is not an error
func (m *Manager) CreateWindow(spec Spec) (*Window, error) {
	id := spec.ID
	if id == "" {
		for {
			id = m.newID()
			if _, taken := m.byID[id]; !taken {
				break
			}
		}
	} else if _, taken := m.byID[id]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateWindow, id)
	}
	if len(spec.Plugins) == 0 {
		return nil, fmt.Errorf("window %q: no plugin assigned", id)
	}
	spec.ID = id

	content := contentRect(spec, m.header)
	w := &Window{
		ID:         id,
		Spec:       spec,
		Bounds:     render.Rect{X: spec.X, Y: spec.Y, W: spec.W, H: spec.H},
		Content:    content,
		Cursor:     cursor.New(),
		CycleTimer: core.NewTimer(float64(spec.CycleInterval.Milliseconds())),
		chrome:     m.layer.Viewport(float64(spec.X), float64(spec.Y), spec.W, spec.H),
	}
	w.Cursor.SetColor(spec.Style.TitleColor)

	m.windows = append(m.windows, w)
	m.byID[id] = w

	m.logger.Debug("window created",
		zap.String("window", id),
		zap.Strings("plugins", spec.Plugins),
		zap.Int("width", content.W),
		zap.Int("height", content.H),
	)

	m.LoadCurrentPlugin(w)
	return w, nil
}

// LoadCurrentPlugin loads the plugin selected by the window's cycle index
func (m *Manager) LoadCurrentPlugin(w *Window) {
	m.load(w, w.CurrentPlugin())
}

// LoadPluginIntoWindow replaces the plugin of window id with name
func (m *Manager) LoadPluginIntoWindow(id, name string) error {
	w, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWindow, id)
	}
	m.load(w, name)
	return nil
}

// load destroys the current instance, issues a fresh viewport and instantiates name
// The outgoing instance is fully destroyed before the incoming one is initialized
func (m *Manager) load(w *Window, name string) {
	m.release(w)

	w.Cursor.SetEnabled(false)
	w.Viewport = m.layer.Viewport(float64(w.Content.X), float64(w.Content.Y), w.Content.W, w.Content.H)

	ctx := plugin.Context{
		Viewport: w.Viewport,
		Width:    w.Content.W,
		Height:   w.Content.H,
		Cursor:   w.Cursor,
		Rand:     m.rand,
	}
	instance, err := m.plugins.Instantiate(name, w.ID, ctx)
	if err != nil {
		m.logger.Warn("window left without plugin",
			zap.String("window", w.ID),
			zap.String("plugin", name),
			zap.Error(err),
		)
	}
	w.Active = instance
}

// release destroys the window's instance and revokes the viewport it was lent
func (m *Manager) release(w *Window) {
	if w.Active != nil {
		m.plugins.DestroyPlugin(w.ID)
		w.Active = nil
	}
	if w.Viewport != nil {
		w.Viewport.Revoke()
	}
}

// Update advances cursors and rotates cycling windows whose interval elapsed
func (m *Manager) Update(dt float64) {
	for _, w := range m.windows {
		w.Cursor.Update(dt)

		if !w.Cycling() {
			continue
		}
		var fired bool
		w.CycleTimer, fired = w.CycleTimer.Step(dt * 1000)
		if !fired {
			continue
		}
		w.CycleIndex = (w.CycleIndex + 1) % len(w.Spec.Plugins)
		m.logger.Debug("window cycling",
			zap.String("window", w.ID),
			zap.String("plugin", w.CurrentPlugin()),
			zap.Int("index", w.CycleIndex),
		)
		m.LoadCurrentPlugin(w)
	}
}

// Clear destroys every active instance and drops every window
func (m *Manager) Clear() {
	for _, w := range m.windows {
		m.release(w)
		w.chrome.Revoke()
	}
	m.windows = nil
	m.byID = make(map[string]*Window)
}

// SetScale sets the collection scale
func (m *Manager) SetScale(sx, sy float64) {
	m.layer.SetScale(sx, sy)
}

// SetPosition sets the collection screen offset
func (m *Manager) SetPosition(x, y float64) {
	m.layer.SetPosition(x, y)
}

// Transform returns the collection transform
func (m *Manager) Transform() render.Transform {
	return m.layer.Transform()
}

// SetVisible shows or hides every window
func (m *Manager) SetVisible(v bool) {
	m.layer.SetVisible(v)
}

// Visible reports whether windows draw
func (m *Manager) Visible() bool {
	return m.layer.Visible()
}

// Window returns the window with id
func (m *Manager) Window(id string) (*Window, bool) {
	w, ok := m.byID[id]
	return w, ok
}

// Windows returns windows in creation order
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// Len returns the number of owned windows
func (m *Manager) Len() int {
	return len(m.windows)
}

// DrawChrome paints every window's frame, run before plugins draw their content
func (m *Manager) DrawChrome() {
	if !m.layer.Visible() {
		return
	}
	for _, w := range m.windows {
		w.drawChrome(m.header)
	}
}

// DrawCursors paints each window's cursor over plugin content
func (m *Manager) DrawCursors() {
	if !m.layer.Visible() {
		return
	}
	for _, w := range m.windows {
		w.Cursor.Draw(w.Viewport)
	}
}
