package geom

// Segment is a straight line between two points.
type Segment struct {
	A, B Vec2
}

// Seg is shorthand for a segment from (ax, ay) to (bx, by).
func Seg(ax, ay, bx, by float64) Segment {
	return Segment{A: Vec2{ax, ay}, B: Vec2{bx, by}}
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return Distance(s.A, s.B)
}

// PointAt returns A + t*(B-A).
func (s Segment) PointAt(t float64) Vec2 {
	return s.A.Add(s.B.Sub(s.A).Scale(t))
}

// IntersectRay intersects the half-line origin + u*dir (u > 0) with the
// segment. It returns the ray parameter u and the segment parameter t in
// [0, 1]. Parallel lines never intersect.
//
// u is measured in units of dir, so when dir is not normalized the caller
// gets distance along dir's own scale. The DDA camera fan relies on this to
// read perpendicular distance directly.
func IntersectRay(origin, dir Vec2, s Segment) (u, t float64, ok bool) {
	edge := s.B.Sub(s.A)
	den := dir.Cross(edge)
	if den == 0 {
		return 0, 0, false
	}
	diff := s.A.Sub(origin)
	u = diff.Cross(edge) / den
	t = diff.Cross(dir) / den
	if u <= 0 || t < 0 || t > 1 {
		return 0, 0, false
	}
	return u, t, true
}

// IntersectSegments intersects two finite segments and returns the crossing
// point. A ray segment whose far end lies exactly on the wall counts as
// reaching it.
func IntersectSegments(ray, wall Segment) (Vec2, bool) {
	u, t, ok := IntersectRay(ray.A, ray.B.Sub(ray.A), wall)
	if !ok || u > 1 {
		return Vec2{}, false
	}
	return wall.PointAt(t), true
}
