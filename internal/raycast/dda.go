package raycast

import (
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/geom"
	"gridcaster/internal/world"
)

// DeltaSentinel stands in for 1/0 when a ray component is zero, so that
// axis never wins the step comparison within a playable map.
const DeltaSentinel = 1e4

// Engine fills a depth buffer for a camera over a grid.
type Engine interface {
	Cast(cam camera.Camera, grid *world.GridMap, buf DepthBuffer) DepthBuffer
}

// Caster is the grid DDA engine. It walks each ray cell by cell, so the
// cost per column is proportional to the distance travelled.
type Caster struct{}

// NewCaster creates a DDA caster.
func NewCaster() *Caster {
	return &Caster{}
}

// Cast fills one hit per column of buf. An empty buffer is grown to one
// column.
func (c *Caster) Cast(cam camera.Camera, grid *world.GridMap, buf DepthBuffer) DepthBuffer {
	buf = buf.Resize(len(buf))
	for col := range buf {
		buf[col] = c.CastColumn(cam, grid, col, len(buf))
	}
	return buf
}

// CastColumn casts the ray for one column.
//
// Cells outside the grid are stepped through as empty. A ray that is
// outside the grid and moving away from it can never hit anything and is
// reported as a miss.
func (c *Caster) CastColumn(cam camera.Camera, grid *world.GridMap, column, columns int) RaycastHit {
	rayDir := cam.RayDir(column, columns)
	return castDDA(cam.Pos, rayDir, grid)
}

func castDDA(pos, rayDir geom.Vec2, grid *world.GridMap) RaycastHit {
	mapX := int(math.Floor(pos.X))
	mapY := int(math.Floor(pos.Y))

	// Distance along the ray between successive grid lines on each axis
	deltaDistX := DeltaSentinel
	if rayDir.X != 0 {
		deltaDistX = math.Abs(1 / rayDir.X)
	}
	deltaDistY := DeltaSentinel
	if rayDir.Y != 0 {
		deltaDistY = math.Abs(1 / rayDir.Y)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDir.X < 0 {
		stepX = -1
		sideDistX = (pos.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - pos.X) * deltaDistX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideDistY = (pos.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - pos.Y) * deltaDistY
	}

	w, h := grid.Width(), grid.Height()
	side := world.SideX
	steps := 0
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = world.SideX
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = world.SideY
		}
		steps++

		id, ok := grid.At(mapX, mapY)
		if !ok {
			if leaving(mapX, stepX, w) || leaving(mapY, stepY, h) {
				return miss(steps)
			}
			continue
		}
		if id == world.TileEmpty {
			continue
		}

		var dist float64
		step := stepX
		if side == world.SideX {
			dist = sideDistX - deltaDistX
		} else {
			dist = sideDistY - deltaDistY
			step = stepY
		}

		return RaycastHit{
			Distance:     dist,
			Side:         side,
			Face:         faceFor(side, step),
			TextureIndex: id,
			TextureU:     textureU(side, pos, rayDir, dist),
			MapX:         mapX,
			MapY:         mapY,
			Steps:        steps,
		}
	}
}

// leaving reports whether coordinate v is past the grid edge on the side
// that step moves away from.
func leaving(v, step, size int) bool {
	return (v < 0 && step < 0) || (v >= size && step > 0)
}
