package engine

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hollywood/render"
)

// Surface is the rendering target acquired by the host
type Surface interface {
	Size() (width, height int)
	// Show presents a composed frame
	Show(buf *render.Buffer)
}

// ScreenSurface presents frames on a tcell screen
type ScreenSurface struct {
	Screen tcell.Screen
}

// NewScreenSurface wraps an initialized screen
func NewScreenSurface(s tcell.Screen) *ScreenSurface {
	return &ScreenSurface{Screen: s}
}

func (s *ScreenSurface) Size() (int, int) {
	return s.Screen.Size()
}

func (s *ScreenSurface) Show(buf *render.Buffer) {
	buf.Flush(s.Screen)
}
