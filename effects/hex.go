package effects

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/cursor"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

const (
	hexStartOffset  = 0x1000
	hexBytesPerLine = 8
	hexScrollSec    = 0.05
	hexCursorChance = 0.1
	// hexDumpColumn is the first column of the byte field
	hexDumpColumn = 10
	hexDumpWidth  = hexBytesPerLine * 3
)

// Hex scrolls a memory dump with a block cursor hopping across the byte field
type Hex struct {
	canvas
	cursor *cursor.Cursor
	offset uint32
	lines  []string
	scroll core.Timer
}

// NewHex creates the hex dump effect
func NewHex() *Hex {
	return &Hex{}
}

func (x *Hex) Init(ctx plugin.Context) error {
	if err := x.bind(ctx); err != nil {
		return err
	}
	x.cursor = ctx.Cursor
	x.offset = hexStartOffset
	x.lines = x.lines[:0]
	for range max(x.h, 1) {
		x.lines = append(x.lines, x.line())
	}
	x.scroll = core.NewTimer(hexScrollSec)

	if x.cursor != nil {
		x.cursor.SetShape(cursor.ShapeBlock)
		x.cursor.SetSize(1, 1)
		x.cursor.SetPosition(hexDumpColumn, 0)
		x.cursor.SetEnabled(true)
	}
	return nil
}

// line renders the next dump row and advances the offset
func (x *Hex) line() string {
	var b strings.Builder
	ascii := make([]byte, hexBytesPerLine)
	fmt.Fprintf(&b, "%08X  ", x.offset)
	for i := range hexBytesPerLine {
		v := byte(x.intn(256))
		fmt.Fprintf(&b, "%02X ", v)
		if v >= 0x20 && v < 0x7F {
			ascii[i] = v
		} else {
			ascii[i] = '.'
		}
	}
	b.WriteString(" |")
	b.Write(ascii)
	b.WriteByte('|')
	x.offset += hexBytesPerLine
	return b.String()
}

// Destroy disables the hosting cursor and drops the viewport
func (x *Hex) Destroy() {
	if x.cursor != nil {
		x.cursor.SetEnabled(false)
	}
	x.cursor = nil
	x.canvas.Destroy()
}

func (x *Hex) Update(dt float64, _ plugin.AuxState) error {
	var fired bool
	if x.scroll, fired = x.scroll.Step(dt); fired {
		x.lines = append(x.lines[1:], x.line())
		if x.cursor != nil && x.rand() < hexCursorChance {
			x.cursor.SetPosition(hexDumpColumn+x.intn(hexDumpWidth), x.intn(x.h))
		}
	}

	for y, line := range x.lines {
		end := x.vp.Text(0, y, line[:hexDumpColumn], render.RGBPhosphorDim)
		end = x.vp.Text(end, y, line[hexDumpColumn:hexDumpColumn+hexDumpWidth], render.RGBPhosphor)
		x.vp.Text(end, y, line[hexDumpColumn+hexDumpWidth:], render.RGBPhosphorMid)
	}
	return nil
}
