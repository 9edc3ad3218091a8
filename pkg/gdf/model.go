package gdf

import (
	"math"

	"github.com/philipparndt/gogdf/pkg/geometry"
)

// Model is a parsed GDF file. A Model returned by Parse is fully validated
// and must be treated as read-only.
type Model struct {
	Header             string
	ULEN               float64
	GRAV               float64
	SymmetryX          bool
	SymmetryY          bool
	DeclaredPanelCount int
	Panels             []Panel
}

// PanelCount returns the number of panels actually parsed
func (m *Model) PanelCount() int {
	return len(m.Panels)
}

// SymmetryPlanes returns how many of the x=0 and y=0 planes are planes of symmetry
func (m *Model) SymmetryPlanes() int {
	n := 0
	if m.SymmetryX {
		n++
	}
	if m.SymmetryY {
		n++
	}
	return n
}

// FullBodyPanelCount returns the number of panels the complete body would
// have once mirrored across its symmetry planes. No geometry is generated.
func (m *Model) FullBodyPanelCount() int {
	return len(m.Panels) << m.SymmetryPlanes()
}

// BoundingBox calculates the bounding box of all panel vertices
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, panel := range m.Panels {
		bbox.Extend(panel.Vertices[:]...)
	}
	return bbox
}

// WettedArea returns the summed panel area of the described portion of the body
func (m *Model) WettedArea() float64 {
	total := 0.0
	for _, panel := range m.Panels {
		total += panel.Area()
	}
	return total
}

// PanelKind classifies a panel by its coincident sides.
type PanelKind int

const (
	// KindQuad has no coincident adjacent vertices.
	KindQuad PanelKind = iota
	// KindTriangle has exactly one pair of coincident adjacent vertices.
	KindTriangle
	// KindCollapsed has more than one coincident side.
	KindCollapsed
)

func (k PanelKind) String() string {
	switch k {
	case KindQuad:
		return "quad"
	case KindTriangle:
		return "triangle"
	case KindCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Panel is a four-vertex facet. Triangles repeat a vertex, so Vertices always
// has four entries. Side i joins vertex i and vertex (i+1)%4.
type Panel struct {
	Vertices             [4]geometry.Vector3
	Line                 int
	Kind                 PanelKind
	IsDegenerateTriangle bool
	CoincidentSides      [4]bool
}

// NewPanel classifies the vertices using tol as the coincidence distance.
func NewPanel(vertices [4]geometry.Vector3, tol float64) Panel {
	p := Panel{Vertices: vertices}

	coincident := 0
	for i := range p.Vertices {
		a, b := p.Side(i)
		if a.Coincident(b, tol) {
			p.CoincidentSides[i] = true
			coincident++
		}
	}

	switch coincident {
	case 0:
		p.Kind = KindQuad
	case 1:
		p.Kind = KindTriangle
		p.IsDegenerateTriangle = true
	default:
		p.Kind = KindCollapsed
	}
	return p
}

// Side returns the end points of side i
func (p Panel) Side(i int) (geometry.Vector3, geometry.Vector3) {
	return p.Vertices[i%4], p.Vertices[(i+1)%4]
}

// SideLengths returns the lengths of sides 1-2, 2-3, 3-4 and 4-1
func (p Panel) SideLengths() [4]float64 {
	var lengths [4]float64
	for i := range lengths {
		a, b := p.Side(i)
		lengths[i] = a.Distance(b)
	}
	return lengths
}

// Perimeter returns the total length of all sides
func (p Panel) Perimeter() float64 {
	total := 0.0
	for _, l := range p.SideLengths() {
		total += l
	}
	return total
}

// diagonalCross is (v3-v1) x (v4-v2). Its length is twice the area of the
// panel projected onto its mean plane, and it points along the normal given
// by the vertex winding.
func (p Panel) diagonalCross() geometry.Vector3 {
	d1 := p.Vertices[2].Sub(p.Vertices[0])
	d2 := p.Vertices[3].Sub(p.Vertices[1])
	return d1.Cross(d2)
}

// Area returns the panel area. Non-planar panels are measured on the plane
// that best fits their diagonals.
func (p Panel) Area() float64 {
	return p.diagonalCross().Length() / 2.0
}

// Normal returns the unit normal implied by the vertex ordering. For panels
// numbered counter-clockwise from the fluid it points into the fluid.
func (p Panel) Normal() geometry.Vector3 {
	return p.diagonalCross().Normalize()
}

// Centroid returns the mean of the four vertices
func (p Panel) Centroid() geometry.Vector3 {
	sum := geometry.Vector3{}
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(0.25)
}

// FreeSurfaceVertexCount counts vertices with |z| <= tol
func (p Panel) FreeSurfaceVertexCount(tol float64) int {
	n := 0
	for _, v := range p.Vertices {
		if onFreeSurface(v, tol) {
			n++
		}
	}
	return n
}

// HasSelfIntersection reports whether two non-adjacent sides of a quad cross
// when projected onto the panel's mean plane. Triangles and collapsed panels
// never report an intersection.
func (p Panel) HasSelfIntersection() bool {
	q, eps, ok := p.planar()
	if !ok {
		return false
	}
	return geometry.SegmentsIntersect(q[0], q[1], q[2], q[3], eps) ||
		geometry.SegmentsIntersect(q[1], q[2], q[3], q[0], eps)
}

// IsConvex reports whether every interior angle of a quad is at most 180
// degrees. Triangles are always convex.
func (p Panel) IsConvex() bool {
	q, eps, ok := p.planar()
	if !ok {
		return true
	}
	for i := range q {
		prev := q[(i+3)%4]
		next := q[(i+1)%4]
		if geometry.Orientation(prev, q[i], next) < -eps {
			return false
		}
	}
	return true
}

// Triangles splits the panel along the 1-3 diagonal, keeping the vertex
// winding. A degenerate triangle yields one triangle; collapsed panels none.
func (p Panel) Triangles() []geometry.Triangle {
	switch p.Kind {
	case KindQuad:
		v := p.Vertices
		return []geometry.Triangle{
			newTriangle(v[0], v[1], v[2]),
			newTriangle(v[0], v[2], v[3]),
		}
	case KindTriangle:
		var corners []geometry.Vector3
		for i, v := range p.Vertices {
			// drop the first vertex of the coincident side
			if !p.CoincidentSides[i] {
				corners = append(corners, v)
			}
		}
		return []geometry.Triangle{newTriangle(corners[0], corners[1], corners[2])}
	default:
		return nil
	}
}

func newTriangle(a, b, c geometry.Vector3) geometry.Triangle {
	t := geometry.NewTriangle(geometry.Vector3{}, a, b, c)
	t.Normal = t.CalculateNormal()
	return t
}

// planar projects a quad onto its mean plane. The frame is chosen so the
// projected polygon is counter-clockwise. eps scales with the panel size.
func (p Panel) planar() ([4]geometry.Vector2, float64, bool) {
	var q [4]geometry.Vector2
	if p.Kind != KindQuad {
		return q, 0, false
	}
	plane, ok := geometry.NewPlane(p.Vertices[0], p.diagonalCross(), p.Vertices[2].Sub(p.Vertices[0]))
	if !ok {
		return q, 0, false
	}
	for i, v := range p.Vertices {
		q[i] = plane.Project(v)
	}

	size := math.Max(p.Vertices[0].Distance(p.Vertices[2]), p.Vertices[1].Distance(p.Vertices[3]))
	return q, size * size * 1e-12, true
}

func onFreeSurface(v geometry.Vector3, tol float64) bool {
	return math.Abs(v.Z) <= tol
}
