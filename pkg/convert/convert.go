// Package convert builds meshes from GDF panels and panels from meshes.
// Vertex winding is carried through unchanged in both directions, so panels
// numbered counter-clockwise from the fluid become triangles whose normals
// point into the fluid. Symmetry planes are never expanded.
package convert

import (
	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/philipparndt/gogdf/pkg/geometry"
	"github.com/philipparndt/gogdf/pkg/stl"
)

// ToSTL triangulates every panel. Quads give two triangles, degenerate
// triangles one, collapsed panels none.
func ToSTL(m *gdf.Model) *stl.Model {
	out := stl.NewModel(m.Header, 2*len(m.Panels))
	for _, panel := range m.Panels {
		for _, tri := range panel.Triangles() {
			out.AddTriangle(tri)
		}
	}
	return out
}

// FromSTL turns each facet into a panel whose fourth vertex repeats the
// third. The result is not validated; write it with gdf.Write and parse it
// back to obtain diagnostics.
func FromSTL(s *stl.Model, ulen, grav float64) *gdf.Model {
	tol := ulen * gdf.DefaultCoincidenceFactor
	m := &gdf.Model{
		Header:             s.Name,
		ULEN:               ulen,
		GRAV:               grav,
		DeclaredPanelCount: len(s.Triangles),
		Panels:             make([]gdf.Panel, 0, len(s.Triangles)),
	}
	for _, tri := range s.Triangles {
		panel := gdf.NewPanel([4]geometry.Vector3{tri.V1, tri.V2, tri.V3, tri.V3}, tol)
		m.Panels = append(m.Panels, panel)
	}
	return m
}
