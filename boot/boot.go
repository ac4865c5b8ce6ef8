// Package boot implements the single-shot BIOS log shown before the desktop starts
package boot

import (
	"github.com/lixenwraith/hollywood/constants"
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/render"
)

// DefaultLines is the BIOS log typed out at boot
var DefaultLines = []string{
	"HOLLYWOOD BIOS v2.0",
	"COPYRIGHT (C) 1999-2026",
	"",
	"CPU: QUANTUM CORE i9 @ 9.9GHz",
	"MEM: 64TB OK",
	"",
	"INITIALIZING GRAPHICS ADAPTER...",
	" OK",
	"LOADING KERNEL...",
	" [....................] 100%",
	"MOUNTING FILE SYSTEMS...",
	" /ROOT: READ-ONLY",
	" /USR: MOUNTED",
	" /NET: CONNECTED (SECURE)",
	"",
	"STARTING HOLLYWOOD_OS SESSION MANAGER...",
	"ACCESS GRANTED.",
}

// Text placement on screen
const (
	textX = 2
	textY = 1
)

// Option configures a Sequence
type Option func(*Sequence)

// WithLines replaces the log
func WithLines(lines []string) Option {
	return func(s *Sequence) {
		s.log = append([]string(nil), lines...)
	}
}

// WithTiming sets the per-line and settle intervals in seconds
func WithTiming(line, settle float64) Option {
	return func(s *Sequence) {
		s.line = core.NewTimer(line)
		s.settle = core.NewTimer(settle)
	}
}

// WithLineHook registers a callback invoked with every appended line
func WithLineHook(fn func(line string)) Option {
	return func(s *Sequence) {
		s.onLine = fn
	}
}

// WithStartHook registers a callback invoked on the first update
func WithStartHook(fn func()) Option {
	return func(s *Sequence) {
		s.onStart = fn
	}
}

// Sequence appends one log line per interval, waits out the settle interval,
// then invokes its completion callback exactly once
type Sequence struct {
	log   []string
	lines []string

	line   core.Timer
	settle core.Timer

	started bool
	done    bool

	onComplete func()
	onLine     func(string)
	onStart    func()
}

// New creates a sequence that calls onComplete when finished
func New(onComplete func(), opts ...Option) *Sequence {
	s := &Sequence{
		log:        DefaultLines,
		line:       core.NewTimer(constants.BootLineInterval.Seconds()),
		settle:     core.NewTimer(constants.BootSettleInterval.Seconds()),
		onComplete: onComplete,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update advances the sequence by dt seconds, inert once done
func (s *Sequence) Update(dt float64) {
	if s.done {
		return
	}
	if !s.started {
		s.started = true
		if s.onStart != nil {
			s.onStart()
		}
	}

	if len(s.lines) < len(s.log) {
		var fired bool
		if s.line, fired = s.line.Step(dt); fired {
			next := s.log[len(s.lines)]
			s.lines = append(s.lines, next)
			if s.onLine != nil {
				s.onLine(next)
			}
		}
		return
	}

	var fired bool
	if s.settle, fired = s.settle.Step(dt); fired {
		s.done = true
		if s.onComplete != nil {
			s.onComplete()
		}
	}
}

// Lines returns the lines appended so far
func (s *Sequence) Lines() []string {
	return s.lines
}

// Typing reports whether lines remain to be appended
func (s *Sequence) Typing() bool {
	return len(s.lines) < len(s.log)
}

// Done reports whether the completion callback has run
func (s *Sequence) Done() bool {
	return s.done
}

// Draw renders the log into buf with a caret after the last line while typing
func (s *Sequence) Draw(buf *render.Buffer) {
	if buf == nil {
		return
	}
	layer := render.NewLayer()
	layer.Bind(buf)
	w, h := buf.Size()
	view := layer.Viewport(0, 0, w, h)

	y := textY
	col := textX
	for _, ln := range s.lines {
		col = view.Text(textX, y, ln, render.RGBPhosphor)
		y++
	}
	if s.Typing() {
		caretY := y - 1
		if len(s.lines) == 0 {
			caretY = textY
		}
		view.Set(col, caretY, '_', render.RGBPhosphor)
	}
}
