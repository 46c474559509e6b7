// Package geom holds the 2D primitives shared by the camera, the casters and
// the compositor. All coordinates are in grid units: one tile is 1x1.
package geom

import "math"

// Vec2 is a 2D vector or point in grid space.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rotate rotates v by theta radians: x' = x cos - y sin, y' = x sin + y cos.
// With y pointing down the grid a positive theta turns clockwise on screen.
func (v Vec2) Rotate(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perp returns v rotated a quarter turn toward positive theta, scaled to
// length l. In a y-down grid that is the viewer's right.
func (v Vec2) Perp(l float64) Vec2 {
	n := v.Len()
	if n == 0 {
		return Vec2{}
	}
	return Vec2{X: -v.Y, Y: v.X}.Scale(l / n)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// FromDegrees returns the unit vector for a heading in degrees.
func FromDegrees(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: cos, Y: sin}
}

// Degrees returns the heading of v in degrees, in (-180, 180].
func (v Vec2) Degrees() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}
