package constants

import "time"

// Tick Loop Timing
const (
	// MaxFrameDelta caps a single tick so a suspended process does not fast-forward timers
	MaxFrameDelta = 250 * time.Millisecond
)

// Boot Sequence Timing
const (
	// BootLineInterval is the delay between appended boot log lines
	BootLineInterval = 100 * time.Millisecond

	// BootSettleInterval is the pause after the last line before the desktop appears
	BootSettleInterval = 1 * time.Second
)

// Cursor Defaults
const (
	// CursorBlinkPeriod is the duration of each blink phase
	CursorBlinkPeriod = 500 * time.Millisecond

	// CursorWidth and CursorHeight are the default cursor box in cells
	CursorWidth  = 1
	CursorHeight = 1
)

// Plugin Fault Reporting
const (
	// FaultReportInterval is the minimum gap between repeated fault reports of one window
	FaultReportInterval = 2 * time.Second

	// FaultReportBurst allows the first few faults through immediately
	FaultReportBurst = 3
)
