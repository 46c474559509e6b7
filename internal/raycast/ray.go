package raycast

import (
	"gridcaster/internal/camera"
	"gridcaster/internal/geom"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// Ray is the angle form of a cast ray: a half-line from Start at Angle
// degrees, cut at MaxLength or at the nearest wall it meets.
type Ray struct {
	Start     geom.Vec2
	End       geom.Vec2
	Angle     float64 // degrees in [0, 360)
	MaxLength float64
	Collided  bool
	Texture   uint8   // tile ID of the wall hit
	WallPos   float64 // position along the hit wall segment in [0, 1]
}

// NewRay creates a ray reaching its full length.
func NewRay(start geom.Vec2, angle, maxLength float64) Ray {
	r := Ray{Start: start, Angle: mathutil.NormalizeDegrees(angle), MaxLength: maxLength}
	r.End = r.CalcEnd()
	return r
}

// CalcEnd returns the endpoint at full length along the current angle.
func (r *Ray) CalcEnd() geom.Vec2 {
	return r.Start.Add(geom.FromDegrees(r.Angle).Scale(r.MaxLength))
}

// Length returns the current length, shorter than MaxLength after a hit.
func (r *Ray) Length() float64 {
	return geom.Distance(r.Start, r.End)
}

// Turn rotates the ray by step degrees and restores its full length.
func (r *Ray) Turn(step float64) {
	r.Angle = mathutil.NormalizeDegrees(r.Angle + step)
	r.Reset(r.Start)
}

// Reset moves the ray to start and clears any hit.
func (r *Ray) Reset(start geom.Vec2) {
	r.Start = start
	r.End = r.CalcEnd()
	r.Collided = false
	r.Texture = world.TileEmpty
	r.WallPos = 0
}

// Intersect shortens the ray to the nearest wall it crosses. It reports
// whether any wall was hit.
func (r *Ray) Intersect(walls []world.WallSegment) bool {
	for _, w := range walls {
		p, ok := geom.IntersectSegments(geom.Segment{A: r.Start, B: r.End}, w.Seg)
		if !ok {
			continue
		}
		if geom.Distance(r.Start, p) >= r.Length() {
			continue
		}
		r.End = p
		r.Collided = true
		r.Texture = w.Texture
		r.WallPos = geom.Distance(w.Seg.A, p) / w.Seg.Len()
	}
	return r.Collided
}

// Fan builds one ray per column across the camera's field of view, each
// clipped against walls. The result feeds overhead views; the renderer
// uses the depth buffer.
func Fan(cam camera.Camera, columns int, maxLength float64, walls []world.WallSegment) []Ray {
	columns = mathutil.IntMax(columns, 1)
	rays := make([]Ray, columns)
	for col := range rays {
		rays[col] = NewRay(cam.Pos, cam.RayAngle(col, columns), maxLength)
		rays[col].Intersect(walls)
	}
	return rays
}
