// Package render draws a depth buffer into an RGBA frame: the backdrop,
// textured wall columns, then depth-tested billboard sprites on top.
package render

import (
	"image"

	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// MinDistance keeps projections finite when the camera touches a wall.
const MinDistance = 1e-4

// Shading darkens colors with distance.
type Shading struct {
	MaxDistance   float64 // distance at which brightness bottoms out
	BrightnessMin float64 // floor for the distance factor
	SideShade     float64 // extra factor for SideY walls
}

// DefaultShading matches a 10 tile view with half-bright Y faces.
func DefaultShading() Shading {
	return Shading{MaxDistance: 10, BrightnessMin: 0, SideShade: 0.5}
}

// Factor returns clamp(1 - dist/MaxDistance, BrightnessMin, 1), times
// SideShade for SideY.
func (s Shading) Factor(dist float64, side world.Side) float64 {
	f := 1.0
	if s.MaxDistance > 0 {
		f = mathutil.Clamp(1-dist/s.MaxDistance, s.BrightnessMin, 1)
	}
	if side == world.SideY {
		f *= s.SideShade
	}
	return f
}

// NewFrame allocates a frame of at least 1x1.
func NewFrame(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, mathutil.IntMax(width, 1), mathutil.IntMax(height, 1)))
}
