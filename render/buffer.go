package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Buffer is a cell compositor sized to the terminal
// All drawing of a frame lands here before a single Flush to the screen
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RGBPhosphor, Bg: RGBBackground}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Bounds returns the buffer area as a rectangle at the origin
func (b *Buffer) Bounds() Rect {
	return Rect{W: b.width, H: b.height}
}

// inBounds returns true if in buffer bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes rune, foreground and attrs while preserving existing background
// Double-width runes claim the cell to their right
func (b *Buffer) Set(x, y int, r rune, fg RGB, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.clearWide(x, y)

	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
	dst.wideTail = false

	if runewidth.RuneWidth(r) == 2 && b.inBounds(x+1, y) {
		tail := &b.cells[idx+1]
		tail.Rune = 0
		tail.wideTail = true
		tail.Bg = dst.Bg
	}
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg RGB, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Bg = bg
	b.Set(x, y, r, fg, attrs)
}

// SetBg updates the background color while preserving existing rune/foreground
func (b *Buffer) SetBg(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Bg = bg
}

// Get returns the cell at position, zero Cell when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// clearWide breaks a double-width pair that a write at (x,y) would split
func (b *Buffer) clearWide(x, y int) {
	idx := y*b.width + x
	if b.cells[idx].wideTail && x > 0 {
		head := &b.cells[idx-1]
		head.Rune = ' '
	}
	if runewidth.RuneWidth(b.cells[idx].Rune) == 2 && b.inBounds(x+1, y) {
		tail := &b.cells[idx+1]
		tail.Rune = ' '
		tail.wideTail = false
	}
}

// Flush writes the buffer to the screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			if c.wideTail {
				continue
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(c.Fg.Tcell()).
				Background(c.Bg.Tcell()).
				Attributes(c.Attrs)
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
