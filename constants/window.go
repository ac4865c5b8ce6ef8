package constants

import "time"

// Window Defaults
// Geometry is measured in terminal cells of the reference resolution
const (
	DefaultWindowWidth  = 40
	DefaultWindowHeight = 12
	DefaultBorderWidth  = 1

	// HeaderHeight is the title row plus the rule under it
	HeaderHeight = 2

	DefaultWindowTitle = "TERMINAL"

	// DefaultCycleInterval applies when a cycling window sets no interval
	DefaultCycleInterval = 5000 * time.Millisecond
)

// Window Colors (0xRRGGBB)
const (
	DefaultBorderColor uint32 = 0x00FF00
	DefaultBgColor     uint32 = 0x000000
	DefaultTitleColor  uint32 = 0x00FF00
)

// Window ID generation
const (
	// GeneratedIDPrefix prefixes window ids derived from uuids
	GeneratedIDPrefix = "win-"
)
