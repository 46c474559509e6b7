// Package raycast casts one ray per screen column through a tile grid and
// records the nearest wall for each into a depth buffer.
package raycast

import (
	"math"

	"gridcaster/internal/geom"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// RaycastHit is the nearest wall seen by one column.
type RaycastHit struct {
	Distance     float64    // perpendicular distance to the camera plane
	Side         world.Side // axis crossed to reach the wall
	Face         world.Face
	TextureIndex uint8   // tile ID of the wall; 0 means the ray hit nothing
	TextureU     float64 // horizontal texture coordinate in [0, 1]
	MapX, MapY   int     // wall cell
	Steps        int     // grid lines crossed by the DDA walk
}

// Missed reports whether the ray escaped without hitting a wall.
func (h RaycastHit) Missed() bool {
	return h.TextureIndex == world.TileEmpty
}

// miss is the record for a ray that left the grid for good. Its infinite
// distance never occludes a sprite.
func miss(steps int) RaycastHit {
	return RaycastHit{Distance: math.Inf(1), Steps: steps}
}

// DepthBuffer holds one hit per column, left to right.
type DepthBuffer []RaycastHit

// NewDepthBuffer allocates a buffer for columns rays, at least one.
func NewDepthBuffer(columns int) DepthBuffer {
	return make(DepthBuffer, mathutil.IntMax(columns, 1))
}

// Resize returns a buffer of the requested length, reusing b when it is
// already the right size.
func (b DepthBuffer) Resize(columns int) DepthBuffer {
	columns = mathutil.IntMax(columns, 1)
	if len(b) == columns {
		return b
	}
	if cap(b) >= columns {
		return b[:columns]
	}
	return make(DepthBuffer, columns)
}

// Sample returns the hit covering screen column screenX of a viewport
// screenW pixels wide. Columns outside the viewport clamp to the edges.
func (b DepthBuffer) Sample(screenX, screenW int) RaycastHit {
	if screenW <= 0 {
		return b[0]
	}
	i := screenX * len(b) / screenW
	return b[mathutil.IntClamp(i, 0, len(b)-1)]
}

// textureU maps a hit point to the wall's horizontal texture coordinate.
// Faces approached from the positive side of their axis are mirrored so
// the texture reads left to right on every face.
func textureU(side world.Side, pos, rayDir geom.Vec2, dist float64) float64 {
	var wallX float64
	if side == world.SideX {
		wallX = pos.Y + dist*rayDir.Y
	} else {
		wallX = pos.X + dist*rayDir.X
	}
	u := mathutil.Frac(wallX)

	if side == world.SideX && rayDir.X < 0 {
		u = 1 - u
	}
	if side == world.SideY && rayDir.Y > 0 {
		u = 1 - u
	}
	return u
}

// faceFor names the face entered when stepping along side in direction step.
func faceFor(side world.Side, step int) world.Face {
	if side == world.SideX {
		if step > 0 {
			return world.FaceWest
		}
		return world.FaceEast
	}
	if step > 0 {
		return world.FaceNorth
	}
	return world.FaceSouth
}
