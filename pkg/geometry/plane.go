package geometry

import "math"

// Vector2 is a point in a local 2D frame, typically a panel's mean plane.
type Vector2 struct {
	U, V float64
}

// Sub returns the difference between two points
func (p Vector2) Sub(other Vector2) Vector2 {
	return Vector2{U: p.U - other.U, V: p.V - other.V}
}

// Cross returns the z component of the 3D cross product of two planar vectors.
func (p Vector2) Cross(other Vector2) float64 {
	return p.U*other.V - p.V*other.U
}

// Plane is an orthonormal frame (Origin, AxisU, AxisV) with Normal = AxisU x AxisV.
type Plane struct {
	Origin Vector3
	AxisU  Vector3
	AxisV  Vector3
	Normal Vector3
}

// NewPlane builds a frame with the given normal, using dir (projected into the
// plane) as the U axis. It returns false if normal or dir are degenerate.
func NewPlane(origin, normal, dir Vector3) (Plane, bool) {
	n := normal.Normalize()
	if n.Length() == 0 {
		return Plane{}, false
	}
	u := dir.Sub(n.Mul(dir.Dot(n))).Normalize()
	if u.Length() == 0 {
		return Plane{}, false
	}
	return Plane{Origin: origin, AxisU: u, AxisV: n.Cross(u), Normal: n}, true
}

// Project maps a 3D point into the plane's local coordinates.
func (pl Plane) Project(p Vector3) Vector2 {
	d := p.Sub(pl.Origin)
	return Vector2{U: d.Dot(pl.AxisU), V: d.Dot(pl.AxisV)}
}

// Orientation returns the signed doubled area of triangle (a, b, c):
// positive when counter-clockwise, negative when clockwise.
func Orientation(a, b, c Vector2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// SegmentsIntersect reports whether segments ab and cd share a point.
// Orientations with magnitude at or below eps count as collinear.
func SegmentsIntersect(a, b, c, d Vector2, eps float64) bool {
	o1 := sign(Orientation(a, b, c), eps)
	o2 := sign(Orientation(a, b, d), eps)
	o3 := sign(Orientation(c, d, a), eps)
	o4 := sign(Orientation(c, d, b), eps)

	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}

	// touching or collinear overlap
	switch {
	case o1 == 0 && onSegment(a, b, c):
		return true
	case o2 == 0 && onSegment(a, b, d):
		return true
	case o3 == 0 && onSegment(c, d, a):
		return true
	case o4 == 0 && onSegment(c, d, b):
		return true
	}
	return false
}

func sign(v, eps float64) int {
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	default:
		return 0
	}
}

// onSegment assumes p is collinear with ab and checks the bounding box.
func onSegment(a, b, p Vector2) bool {
	return p.U >= math.Min(a.U, b.U) && p.U <= math.Max(a.U, b.U) &&
		p.V >= math.Min(a.V, b.V) && p.V <= math.Max(a.V, b.V)
}
