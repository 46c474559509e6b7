// Package camera holds the player's view: a position, a unit facing vector
// and a camera plane perpendicular to it whose length sets the field of view.
package camera

import (
	"errors"
	"math"

	"gridcaster/internal/geom"
	"gridcaster/internal/input"
)

// ErrZeroDirection is returned when a camera is built facing nowhere.
var ErrZeroDirection = errors.New("camera direction must be non-zero")

// Camera is the direction/plane view model. Dir and Plane are never zero.
type Camera struct {
	Pos   geom.Vec2
	Dir   geom.Vec2
	Plane geom.Vec2
}

// Speeds are per-second movement rates.
type Speeds struct {
	Move float64 // grid units per second
	Turn float64 // radians per second
}

// Mover applies a movement delta against the world, dropping blocked axes.
// collision.System implements it.
type Mover interface {
	Slide(pos, delta geom.Vec2) geom.Vec2
}

// New builds a camera at pos facing dir. dir is normalized and the plane is
// set perpendicular to it with length planeLen, so the horizontal field of
// view is 2*atan(planeLen).
func New(pos, dir geom.Vec2, planeLen float64) (Camera, error) {
	if dir.IsZero() {
		return Camera{}, ErrZeroDirection
	}
	unit := dir.Scale(1 / dir.Len())
	return Camera{Pos: pos, Dir: unit, Plane: unit.Perp(planeLen)}, nil
}

// Rotate turns the view by theta radians, positive to the right. Dir and
// Plane rotate together so their lengths and right angle are kept.
func (c *Camera) Rotate(theta float64) {
	c.Dir = c.Dir.Rotate(theta)
	c.Plane = c.Plane.Rotate(theta)
}

// Update applies one tick of input. Rotation happens first so movement uses
// the new facing.
func (c *Camera) Update(in input.Intent, dt float64, mover Mover, sp Speeds) {
	if dt <= 0 {
		return
	}
	if in.Turn != 0 {
		c.Rotate(sp.Turn * dt * float64(in.Turn))
	}
	if in.Move != 0 {
		delta := c.Dir.Scale(sp.Move * dt * float64(in.Move))
		c.Pos = mover.Slide(c.Pos, delta)
	}
}

// CameraX maps a column to the camera plane coordinate in [-1, 1).
func CameraX(column, columns int) float64 {
	return 2*float64(column)/float64(columns) - 1
}

// RayDir returns the unnormalized ray direction for a column:
// dir + plane*cameraX.
func (c Camera) RayDir(column, columns int) geom.Vec2 {
	return c.Dir.Add(c.Plane.Scale(CameraX(column, columns)))
}

// FOV returns the horizontal field of view in radians.
func (c Camera) FOV() float64 {
	return 2 * math.Atan2(c.Plane.Len(), c.Dir.Len())
}

// Det returns plane.x*dir.y - dir.x*plane.y, the determinant of the
// camera basis. Zero means the basis cannot be inverted.
func (c Camera) Det() float64 {
	return c.Plane.X*c.Dir.Y - c.Dir.X*c.Plane.Y
}

// Transform maps a world point into camera space. x is the offset along the
// plane and y the depth along the view direction. ok is false for a
// singular basis.
func (c Camera) Transform(p geom.Vec2) (x, y float64, ok bool) {
	det := c.Det()
	if det == 0 {
		return 0, 0, false
	}
	invDet := 1 / det
	rel := p.Sub(c.Pos)
	x = invDet * (c.Dir.Y*rel.X - c.Dir.X*rel.Y)
	y = invDet * (-c.Plane.Y*rel.X + c.Plane.X*rel.Y)
	return x, y, true
}
