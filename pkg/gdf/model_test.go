package gdf

import (
	"testing"

	"github.com/philipparndt/gogdf/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertices(coords ...float64) [4]geometry.Vector3 {
	var v [4]geometry.Vector3
	for i := range v {
		v[i] = geometry.NewVector3(coords[i*3], coords[i*3+1], coords[i*3+2])
	}
	return v
}

func TestNewPanelClassification(t *testing.T) {
	tests := []struct {
		name       string
		coords     []float64
		kind       PanelKind
		degenerate bool
	}{
		{"quad", []float64{0, 0, -1, 1, 0, -1, 1, 1, -1, 0, 1, -1}, KindQuad, false},
		{"triangle side 2-3", []float64{0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0}, KindTriangle, true},
		{"triangle side 4-1", []float64{0, 0, -1, 1, 0, -1, 1, 1, -1, 0, 0, -1}, KindTriangle, true},
		{"near coincident", []float64{0, 0, -1, 1, 0, -1, 1 + 1e-7, 0, -1, 0, 1, -1}, KindTriangle, true},
		{"collapsed", []float64{0, 0, -1, 0, 0, -1, 1, 0, -1, 1, 0, -1}, KindCollapsed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := NewPanel(vertices(tt.coords...), 1e-6)
			assert.Equal(t, tt.kind, panel.Kind)
			assert.Equal(t, tt.degenerate, panel.IsDegenerateTriangle)
			assert.Len(t, panel.Vertices, 4)
		})
	}
}

func TestPanelAreaAndNormal(t *testing.T) {
	quad := NewPanel(vertices(0, 0, -1, 2, 0, -1, 2, 3, -1, 0, 3, -1), 1e-6)
	assert.InDelta(t, 6.0, quad.Area(), 1e-12)
	assert.InDelta(t, 1.0, quad.Normal().Z, 1e-12)
	assert.InDelta(t, 10.0, quad.Perimeter(), 1e-12)
	assert.Equal(t, geometry.NewVector3(1, 1.5, -1), quad.Centroid())

	tri := NewPanel(vertices(0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0), 1e-6)
	assert.InDelta(t, 0.5, tri.Area(), 1e-12)
}

func TestPanelFreeSurfaceVertexCount(t *testing.T) {
	panel := NewPanel(vertices(0, 0, 0, 1, 0, 1e-9, 1, 1, -1, 0, 1, -1), 1e-6)
	assert.Equal(t, 2, panel.FreeSurfaceVertexCount(1e-6))
	assert.Equal(t, 1, panel.FreeSurfaceVertexCount(0))
}

func TestPanelSelfIntersectionAndConvexity(t *testing.T) {
	square := NewPanel(vertices(0, 0, -1, 1, 0, -1, 1, 1, -1, 0, 1, -1), 1e-6)
	assert.False(t, square.HasSelfIntersection())
	assert.True(t, square.IsConvex())

	bowtie := NewPanel(vertices(0, 0, -1, 2, 2, -1, 2, 0, -1, 0, 1, -1), 1e-6)
	assert.True(t, bowtie.HasSelfIntersection())

	dart := NewPanel(vertices(0, 0, -1, 2, 1, -1, 4, 0, -1, 2, 3, -1), 1e-6)
	assert.False(t, dart.HasSelfIntersection())
	assert.False(t, dart.IsConvex())

	// clockwise ordering is still convex: the frame follows the winding
	clockwise := NewPanel(vertices(0, 0, -1, 0, 1, -1, 1, 1, -1, 1, 0, -1), 1e-6)
	assert.True(t, clockwise.IsConvex())
	assert.Equal(t, geometry.NewVector3(0, 0, -1), clockwise.Normal())

	tri := NewPanel(vertices(0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0), 1e-6)
	assert.False(t, tri.HasSelfIntersection())
	assert.True(t, tri.IsConvex())
}

func TestPanelTriangles(t *testing.T) {
	quad := NewPanel(vertices(0, 0, -1, 1, 0, -1, 1, 1, -1, 0, 1, -1), 1e-6)
	tris := quad.Triangles()
	require.Len(t, tris, 2)
	for _, tri := range tris {
		assert.InDelta(t, 0.5, tri.Area(), 1e-12)
		assert.Equal(t, quad.Normal(), tri.Normal)
	}

	tri := NewPanel(vertices(0, 0, -1, 1, 0, -1, 1, 0, -1, 0, 1, -1), 1e-6)
	tris = tri.Triangles()
	require.Len(t, tris, 1)
	assert.Equal(t, geometry.NewVector3(0, 0, -1), tris[0].V1)
	assert.Equal(t, geometry.NewVector3(1, 0, -1), tris[0].V2)
	assert.Equal(t, geometry.NewVector3(0, 1, -1), tris[0].V3)

	collapsed := NewPanel(vertices(0, 0, -1, 0, 0, -1, 1, 0, -1, 1, 0, -1), 1e-6)
	assert.Empty(t, collapsed.Triangles())
}

func TestModelSummaries(t *testing.T) {
	model := &Model{
		ULEN:      1,
		SymmetryX: true,
		SymmetryY: true,
		Panels: []Panel{
			NewPanel(vertices(0, 0, -1, 1, 0, -1, 1, 1, -1, 0, 1, -1), 1e-6),
			NewPanel(vertices(1, 0, -2, 2, 0, -2, 2, 1, -2, 1, 1, -2), 1e-6),
		},
	}

	assert.Equal(t, 2, model.PanelCount())
	assert.Equal(t, 2, model.SymmetryPlanes())
	assert.Equal(t, 8, model.FullBodyPanelCount())
	assert.InDelta(t, 2.0, model.WettedArea(), 1e-12)

	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, -2), bbox.Min)
	assert.Equal(t, geometry.NewVector3(2, 1, -1), bbox.Max)

	assert.True(t, (&Model{}).BoundingBox().IsEmpty())
}
