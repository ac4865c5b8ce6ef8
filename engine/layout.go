package engine

import (
	"github.com/lixenwraith/hollywood/config"
	"github.com/lixenwraith/hollywood/render"
)

// ComputeLayout maps the reference resolution onto a vw x vh viewport
// letterbox keeps the aspect ratio with a uniform scale and centers the result,
// otherwise each axis stretches independently from the origin.
// A degenerate reference yields the identity transform.
func ComputeLayout(ref config.Size, vw, vh float64, letterbox bool) render.Transform {
	if ref.Width <= 0 || ref.Height <= 0 || vw <= 0 || vh <= 0 {
		return render.Identity()
	}
	refW, refH := float64(ref.Width), float64(ref.Height)
	sx := vw / refW
	sy := vh / refH

	if !letterbox {
		return render.Transform{ScaleX: sx, ScaleY: sy}
	}
	s := min(sx, sy)
	return render.Transform{
		ScaleX:  s,
		ScaleY:  s,
		OffsetX: (vw - refW*s) / 2,
		OffsetY: (vh - refH*s) / 2,
	}
}
