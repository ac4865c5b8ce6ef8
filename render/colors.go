package render

// Phosphor palette shared by chrome, boot screen and effects
var (
	RGBBlack      = RGB{0, 0, 0}
	RGBBackground = RGB{5, 5, 5} // Screen background behind the window layer
	RGBWhite      = RGB{255, 255, 255}

	RGBPhosphor       = RGB{0, 255, 0}   // Standard green
	RGBPhosphorBright = RGB{85, 255, 85} // Peak segments, highlights
	RGBPhosphorMid    = RGB{0, 170, 0}   // Code text, lit segments
	RGBPhosphorDim    = RGB{0, 136, 0}   // Labels, secondary series
	RGBPhosphorFaint  = RGB{0, 68, 0}    // Radar rings
	RGBPhosphorGrid   = RGB{0, 51, 0}    // Grid lines
	RGBPhosphorGhost  = RGB{0, 34, 0}    // Unlit segments

	RGBAmber = RGB{255, 176, 0}
	RGBAlert = RGB{255, 60, 60}
)
