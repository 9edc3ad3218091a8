package stl

import (
	"github.com/philipparndt/gogdf/pkg/geometry"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty STL model with room for capacity triangles
func NewModel(name string, capacity int) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0, capacity),
	}
}

// AddTriangle adds a triangle to the model. A zero normal is replaced by the
// normal implied by the vertex winding.
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	if triangle.Normal == (geometry.Vector3{}) {
		triangle.Normal = triangle.CalculateNormal()
	}
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
