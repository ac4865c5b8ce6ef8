package effects

import (
	"time"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

// LogMessages is the pool the log effect draws from
var LogMessages = []string{
	"INITIALIZING KERNEL SUBROUTINE...",
	"BYPASSING SECURITY NODE 42...",
	"DECRYPTING 256-BIT STREAM...",
	"ACCESS GRANTED: LEVEL 5 CLEARANCE",
	"UPLOADING VIRUS.EXE [||||||....]",
	"SCANNING PORTS 8080-9000...",
	"TRACE COMPLETE. IP: 192.168.0.1",
	"ESTABLISHING SECURE HANDSHAKE...",
	"PACKET LOSS DETECTED. RETRYING...",
	"ROOT ACCESS: CONFIRMED",
	"COMPILING SOURCE CODE...",
	"EXECUTING BUFFER OVERFLOW...",
	"FIREWALL BREACH SUCCESSFUL",
	"DOWNLOADING DATABASE 'USERS_TABLE'...",
	"ENCRYPTING PAYLOAD...",
	"CLEANING LOG FILES...",
	"TERMINATING CONNECTION...",
	"SYSTEM REBOOT REQUIRED",
	"MOUNTING VIRTUAL DRIVE Z:...",
	"ALLOCATING MEMORY BLOCK 0x4F2A...",
}

const (
	logMinInterval = 0.05
	logMaxInterval = 0.25
)

// Log scrolls timestamped status lines, newest at the bottom
type Log struct {
	canvas
	now   func() time.Time
	lines []string
	next  core.Timer
}

// NewLog creates the log effect stamped with wall-clock time
func NewLog() *Log {
	return &Log{now: time.Now}
}

func (l *Log) Init(ctx plugin.Context) error {
	if err := l.bind(ctx); err != nil {
		return err
	}
	l.lines = l.lines[:0]
	l.push("SYSTEM READY.")
	l.next = core.NewTimer(l.between(logMinInterval, logMaxInterval))
	return nil
}

func (l *Log) push(msg string) {
	l.lines = append(l.lines, "["+l.now().Format(time.TimeOnly)+"] "+msg)
	if over := len(l.lines) - max(l.h, 1); over > 0 {
		l.lines = l.lines[over:]
	}
}

// Lines returns the visible history
func (l *Log) Lines() []string {
	return l.lines
}

func (l *Log) Update(dt float64, _ plugin.AuxState) error {
	var fired bool
	if l.next, fired = l.next.Step(dt); fired {
		l.push(LogMessages[l.intn(len(LogMessages))])
		l.next.Period = l.between(logMinInterval, logMaxInterval)
	}

	for y, line := range l.lines {
		fg := render.RGBPhosphorMid
		if y == len(l.lines)-1 {
			fg = render.RGBPhosphorBright
		}
		l.vp.Text(0, y, line, fg)
	}
	return nil
}
