package effects

import (
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/cursor"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

// BiosLines is the in-window POST listing, distinct from the desktop boot sequence
var BiosLines = []string{
	"BIOS DATE 01/01/99 14:22:51 VER 1.02",
	"CPU: NEC V20, SPEED: 8 MHz",
	"640K RAM SYSTEM OK",
	"INITIALIZING VIDEO ADAPTER...",
	"VIDEO ADAPTER INITIALIZED",
	"LOADING OS...",
	"MOUNTING DISK A: ... FAILED",
	"MOUNTING DISK C: ... OK",
	"READING SECTOR 0x000...",
	"EXECUTING BOOTSTRAP...",
	"SYSTEM READY.",
}

const (
	biosLineSec = 0.3
	biosHoldSec = 3.0
)

// Bios replays a POST listing in a loop with an underline cursor below the last line
type Bios struct {
	canvas
	cursor *cursor.Cursor
	shown  int
	line   core.Timer
	hold   core.Timer
}

// NewBios creates the looping POST effect
func NewBios() *Bios {
	return &Bios{}
}

func (b *Bios) Init(ctx plugin.Context) error {
	if err := b.bind(ctx); err != nil {
		return err
	}
	b.cursor = ctx.Cursor
	b.shown = 0
	b.line = core.NewTimer(biosLineSec)
	b.hold = core.NewTimer(biosHoldSec)
	if b.cursor != nil {
		b.cursor.SetShape(cursor.ShapeUnderline)
		b.cursor.SetEnabled(true)
		b.cursor.SetPosition(0, 0)
	}
	return nil
}

// Shown returns how many listing lines are on screen
func (b *Bios) Shown() int {
	return b.shown
}

// Destroy disables the hosting cursor and drops the viewport
func (b *Bios) Destroy() {
	if b.cursor != nil {
		b.cursor.SetEnabled(false)
	}
	b.cursor = nil
	b.canvas.Destroy()
}

func (b *Bios) Update(dt float64, _ plugin.AuxState) error {
	var fired bool
	if b.shown < len(BiosLines) {
		if b.line, fired = b.line.Step(dt); fired {
			b.shown++
		}
	} else if b.hold, fired = b.hold.Step(dt); fired {
		b.shown = 0
	}
	if b.cursor != nil {
		b.cursor.SetPosition(0, b.shown)
	}

	for y, line := range BiosLines[:b.shown] {
		b.vp.Text(0, y, line, render.RGBPhosphor)
	}
	return nil
}
