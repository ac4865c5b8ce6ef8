package render

import "github.com/gdamore/tcell/v2"

// Attr is an alias to tcell.AttrMask so callers don't import tcell for text attributes
type Attr = tcell.AttrMask

const (
	AttrNone = tcell.AttrNone
	AttrBold = tcell.AttrBold
	AttrDim  = tcell.AttrDim
)

// Cell is a single composited terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
	// wideTail marks the right half of a double-width rune; flush skips it
	wideTail bool
}
