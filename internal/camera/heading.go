package camera

import (
	"math"

	"gridcaster/internal/geom"
	"gridcaster/internal/mathutil"
)

// Heading is the angle form of a view: a heading in degrees and a field of
// view in degrees. It converts to and from Camera.
type Heading struct {
	Angle float64 // degrees in [0, 360)
	FOV   float64 // degrees
}

// NewHeading returns a heading with its angle normalized.
func NewHeading(angle, fov float64) Heading {
	return Heading{Angle: mathutil.NormalizeDegrees(angle), FOV: fov}
}

// Turn adds step degrees and wraps the angle back into [0, 360).
func (h *Heading) Turn(step float64) {
	h.Angle = mathutil.NormalizeDegrees(h.Angle + step)
}

// PlaneLength returns the camera plane length for a unit direction:
// tan(fov/2).
func (h Heading) PlaneLength() float64 {
	return math.Tan(h.FOV * math.Pi / 360)
}

// Camera converts the heading to the direction/plane form at pos.
func (h Heading) Camera(pos geom.Vec2) Camera {
	dir := geom.FromDegrees(h.Angle)
	return Camera{Pos: pos, Dir: dir, Plane: dir.Perp(h.PlaneLength())}
}

// HeadingOf recovers the heading of a camera.
func HeadingOf(c Camera) Heading {
	return NewHeading(c.Dir.Degrees(), c.FOV()*180/math.Pi)
}

// RayAngle returns the heading in degrees of the ray for a column.
func (c Camera) RayAngle(column, columns int) float64 {
	return mathutil.NormalizeDegrees(c.RayDir(column, columns).Degrees())
}
