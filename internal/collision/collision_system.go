package collision

import (
	"math"

	"gridcaster/internal/geom"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// System answers movement queries against a tile grid. Positions are in
// grid units, so a point maps to the cell floor(x), floor(y).
type System struct {
	tileChecker TileChecker
}

// NewSystem creates a new collision system
func NewSystem(tileChecker TileChecker) *System {
	return &System{tileChecker: tileChecker}
}

// UpdateTileChecker updates the tile checker (used when switching maps)
func (cs *System) UpdateTileChecker(tileChecker TileChecker) {
	cs.tileChecker = tileChecker
}

// CanMoveTo reports whether the point (x, y) lies in an open cell. Points
// outside the grid are blocked.
func (cs *System) CanMoveTo(x, y float64) bool {
	tileX := int(math.Floor(x))
	tileY := int(math.Floor(y))

	width, height := cs.tileChecker.GetWorldBounds()
	if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
		return false
	}
	return !cs.tileChecker.IsTileBlocking(tileX, tileY)
}

// Slide moves pos by delta one axis at a time. The X component is applied
// only if (pos.X+delta.X, pos.Y) is open; the Y component is then tested from
// the updated X. A blocked axis is dropped, which lets the mover slide along
// walls instead of sticking to them.
func (cs *System) Slide(pos, delta geom.Vec2) geom.Vec2 {
	if delta.X != 0 && cs.CanMoveTo(pos.X+delta.X, pos.Y) {
		pos.X += delta.X
	}
	if delta.Y != 0 && cs.CanMoveTo(pos.X, pos.Y+delta.Y) {
		pos.Y += delta.Y
	}
	return pos
}
