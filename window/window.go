// Package window owns the desktop's terminal windows: their geometry, chrome,
// content viewports, cursors and timed plugin cycling.
package window

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/cursor"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

// Style holds resolved chrome colors and border geometry
type Style struct {
	BorderColor render.RGB
	BorderWidth int
	BgColor     render.RGB
	TitleColor  render.RGB
	Line        render.LineType
}

// Spec is a fully resolved window description, every field carries a usable value
type Spec struct {
	// ID is optional, an empty ID is generated at creation
	ID            string
	X, Y          int
	W, H          int
	Title         string
	Style         Style
	Plugins       []string
	CycleInterval time.Duration
}

// Window is the runtime entity created from a Spec
type Window struct {
	ID   string
	Spec Spec

	// Bounds is the outer geometry in reference space
	Bounds render.Rect
	// Content is the plugin area in reference space
	Content render.Rect

	// Viewport is lent to the active plugin, replaced on every load
	Viewport *render.Viewport
	Cursor   *cursor.Cursor

	CycleIndex int
	CycleTimer core.Timer

	// Active is the current plugin instance, nil when loading failed
	Active plugin.Plugin

	chrome *render.Viewport
}

// CurrentPlugin returns the plugin name selected by the cycle index
func (w *Window) CurrentPlugin() string {
	if len(w.Spec.Plugins) == 0 {
		return ""
	}
	return w.Spec.Plugins[w.CycleIndex%len(w.Spec.Plugins)]
}

// Cycling reports whether the window rotates through more than one plugin
func (w *Window) Cycling() bool {
	return len(w.Spec.Plugins) > 1
}

// contentRect derives the plugin area from outer geometry, border and header insets
func contentRect(s Spec, header int) render.Rect {
	bw := max(s.Style.BorderWidth, 0)
	r := render.Rect{
		X: s.X + bw,
		Y: s.Y + bw + header,
		W: s.W - 2*bw,
		H: s.H - 2*bw - header,
	}
	r.W = max(r.W, 0)
	r.H = max(r.H, 0)
	return r
}

// drawChrome paints background, border, title and header rule
func (w *Window) drawChrome(header int) {
	vp := w.chrome
	st := w.Spec.Style
	vp.Fill(st.BgColor)

	bw := max(st.BorderWidth, 0)
	for i := 0; i < bw; i++ {
		vp.Box(i, st.Line, st.BorderColor)
	}

	if header <= 0 {
		return
	}
	inner := w.Spec.W - 2*bw
	if inner <= 0 {
		return
	}
	title := runewidth.Truncate(" "+w.Spec.Title+" ", inner-2, "")
	vp.TextAttr(bw+1, bw, title, st.TitleColor, render.AttrBold)
	if header > 1 {
		rule := st.Line.Horizontal()
		for x := bw; x < bw+inner; x++ {
			vp.Set(x, bw+header-1, rule, render.Scale(st.BorderColor, 0.6))
		}
	}
}
