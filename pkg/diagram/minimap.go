package diagram

import (
	"math"

	"github.com/matzehuels/arbor/pkg/viewport"
)

// MinimapFrame returns the transform of the minimap group for a container of
// width x height: scale by s, then shift so the scaled overview sits inset
// units from the bottom-right corner.
func MinimapFrame(width, height, s, inset float64) viewport.Matrix {
	if s <= 0 || math.IsNaN(s) {
		return viewport.Identity
	}
	return viewport.Scale(s, s).Multiply(viewport.Translate(
		width/s-width-inset,
		height/s-height-inset,
	))
}

// OverlayTransform returns the transform of the viewport rectangle inside the
// minimap: the inverse of t followed by the margin offset. It reports false
// when t is singular, in which case the overlay must not be drawn.
func OverlayTransform(t viewport.Matrix, m Margins) (viewport.Matrix, bool) {
	inv, ok := t.Invert()
	if !ok {
		return viewport.Scale(0, 0), false
	}
	return viewport.Translate(m.Left, m.Top).Multiply(inv), true
}
