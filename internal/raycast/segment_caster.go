package raycast

import (
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/geom"
	"gridcaster/internal/world"
)

// SegmentCaster intersects every column ray with every visible wall face.
// It produces the same records as the DDA caster at a cost proportional to
// the number of faces, and serves as a cross-check and an alternative mode.
type SegmentCaster struct {
	grid     *world.GridMap
	segments []world.WallSegment
}

// NewSegmentCaster creates a segment caster. Segments are derived lazily
// from the first grid it sees.
func NewSegmentCaster() *SegmentCaster {
	return &SegmentCaster{}
}

// Segments returns the wall faces for grid, rebuilding them on a map change.
func (c *SegmentCaster) Segments(grid *world.GridMap) []world.WallSegment {
	if grid != c.grid {
		c.grid = grid
		c.segments = grid.WallSegments()
	}
	return c.segments
}

func (c *SegmentCaster) Cast(cam camera.Camera, grid *world.GridMap, buf DepthBuffer) DepthBuffer {
	buf = buf.Resize(len(buf))
	segs := c.Segments(grid)
	for col := range buf {
		buf[col] = castSegments(cam.Pos, cam.RayDir(col, len(buf)), segs)
	}
	return buf
}

// castSegments keeps the nearest crossing. The ray parameter is measured in
// units of the unnormalized column direction, which makes it the
// perpendicular distance.
func castSegments(pos, rayDir geom.Vec2, segs []world.WallSegment) RaycastHit {
	best := math.Inf(1)
	var bestSeg *world.WallSegment
	for i := range segs {
		u, _, ok := geom.IntersectRay(pos, rayDir, segs[i].Seg)
		if ok && u < best {
			best = u
			bestSeg = &segs[i]
		}
	}
	if bestSeg == nil {
		return miss(len(segs))
	}

	side := bestSeg.Face.Side()
	return RaycastHit{
		Distance:     best,
		Side:         side,
		Face:         bestSeg.Face,
		TextureIndex: bestSeg.Texture,
		TextureU:     textureU(side, pos, rayDir, best),
		MapX:         bestSeg.CellX,
		MapY:         bestSeg.CellY,
		Steps:        len(segs),
	}
}
