package render

// Layer is a drawable coordinate space shared by a collection of viewports
// Changing its transform moves every viewport at once
type Layer struct {
	transform Transform
	buf       *Buffer
	visible   bool
}

// NewLayer creates a visible layer with the identity transform
func NewLayer() *Layer {
	return &Layer{transform: Identity(), visible: true}
}

// Bind attaches the buffer subsequent draws land in, nil detaches
func (l *Layer) Bind(buf *Buffer) {
	l.buf = buf
}

// Buffer returns the bound buffer, may be nil
func (l *Layer) Buffer() *Buffer {
	return l.buf
}

// SetScale sets per-axis scale of the layer
func (l *Layer) SetScale(sx, sy float64) {
	l.transform.ScaleX = sx
	l.transform.ScaleY = sy
}

// SetPosition sets the screen offset of the layer origin
func (l *Layer) SetPosition(x, y float64) {
	l.transform.OffsetX = x
	l.transform.OffsetY = y
}

// Transform returns the current layer transform
func (l *Layer) Transform() Transform {
	return l.transform
}

// SetVisible toggles drawing for every viewport on the layer
func (l *Layer) SetVisible(v bool) {
	l.visible = v
}

// Visible reports whether the layer draws
func (l *Layer) Visible() bool {
	return l.visible
}

// drawable reports whether draws can land anywhere
func (l *Layer) drawable() bool {
	return l != nil && l.visible && l.buf != nil
}

// Viewport creates a clipped viewport at a reference-space origin
func (l *Layer) Viewport(x, y float64, w, h int) *Viewport {
	return &Viewport{
		layer: l,
		x:     x,
		y:     y,
		w:     max(w, 0),
		h:     max(h, 0),
	}
}
