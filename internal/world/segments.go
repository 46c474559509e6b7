package world

import "gridcaster/internal/geom"

// Side names the grid axis a ray crossed to reach a wall.
type Side int

const (
	// SideX: the ray crossed a vertical grid line (x = const) by stepping X.
	SideX Side = iota
	// SideY: the ray crossed a horizontal grid line (y = const) by stepping Y.
	SideY
)

func (s Side) String() string {
	if s == SideY {
		return "y"
	}
	return "x"
}

// Face names which face of a wall cell was hit. The grid's x axis points
// east and its y axis (row index) points south.
type Face int

const (
	FaceWest Face = iota
	FaceEast
	FaceNorth
	FaceSouth
)

// Side returns the axis crossed to reach this face.
func (f Face) Side() Side {
	if f == FaceNorth || f == FaceSouth {
		return SideY
	}
	return SideX
}

func (f Face) String() string {
	switch f {
	case FaceWest:
		return "west"
	case FaceEast:
		return "east"
	case FaceNorth:
		return "north"
	default:
		return "south"
	}
}

// WallSegment is one visible wall-cell face as an explicit segment, used by
// the segment-intersection caster.
type WallSegment struct {
	Seg     geom.Segment
	Texture uint8
	Face    Face
	CellX   int
	CellY   int
}

// WallSegments derives the faces of wall cells that border an open cell.
// Faces between two walls, or facing off the map, can never be seen from a
// valid camera position and are skipped.
func (g *GridMap) WallSegments() []WallSegment {
	var segs []WallSegment
	open := func(x, y int) bool {
		id, ok := g.At(x, y)
		return ok && id == TileEmpty
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			id := g.cells[y*g.width+x]
			if id == TileEmpty {
				continue
			}
			fx, fy := float64(x), float64(y)
			if open(x-1, y) {
				segs = append(segs, WallSegment{Seg: geom.Seg(fx, fy, fx, fy+1), Texture: id, Face: FaceWest, CellX: x, CellY: y})
			}
			if open(x+1, y) {
				segs = append(segs, WallSegment{Seg: geom.Seg(fx+1, fy, fx+1, fy+1), Texture: id, Face: FaceEast, CellX: x, CellY: y})
			}
			if open(x, y-1) {
				segs = append(segs, WallSegment{Seg: geom.Seg(fx, fy, fx+1, fy), Texture: id, Face: FaceNorth, CellX: x, CellY: y})
			}
			if open(x, y+1) {
				segs = append(segs, WallSegment{Seg: geom.Seg(fx, fy+1, fx+1, fy+1), Texture: id, Face: FaceSouth, CellX: x, CellY: y})
			}
		}
	}
	return segs
}
