package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// RGBFromHex unpacks a 0xRRGGBB value
func RGBFromHex(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Hex packs the color as 0xRRGGBB
func (c RGB) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Tcell converts to a tcell true color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blend moves c toward target by t in [0,1], clamped at both ends
func Blend(c, target RGB, t float64) RGB {
	t = math.Max(0, math.Min(1, t))
	mix := func(a, b uint8) uint8 {
		return clamp(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{R: mix(c.R, target.R), G: mix(c.G, target.G), B: mix(c.B, target.B)}
}

// Scale multiplies every channel by f, clamped to [0,255]
func Scale(c RGB, f float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * f),
		G: clamp(float64(c.G) * f),
		B: clamp(float64(c.B) * f),
	}
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add sums channels with saturation, used for glow highlights
func Add(c, src RGB) RGB {
	return RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}
}

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}
