package renderer

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
)

var (
	// LowTint is the clear colour at the lowest camera height.
	LowTint = Color{R: 0.18, G: 0.32, B: 0.16, A: 1}
	// HighTint is the clear colour at the highest camera height.
	HighTint = Color{R: 0.53, G: 0.72, B: 0.92, A: 1}
)

// HeightTint blends LowTint toward HighTint by where height sits in [minHeight, maxHeight].
//
// Parameters:
//   - height: current camera height
//   - minHeight, maxHeight: the zoom bounds
//
// Returns:
//   - Color: the blended colour
func HeightTint(height, minHeight, maxHeight float32) Color {
	t := float64(0)
	if maxHeight > minHeight {
		t = float64(common.Clamp((height-minHeight)/(maxHeight-minHeight), 0, 1))
	}
	return Color{
		R: common.Lerp(LowTint.R, HighTint.R, t),
		G: common.Lerp(LowTint.G, HighTint.G, t),
		B: common.Lerp(LowTint.B, HighTint.B, t),
		A: 1,
	}
}
