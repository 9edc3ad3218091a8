package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/philipparndt/gogdf/pkg/geometry"
)

// EdgeInfo describes one panel side
type EdgeInfo struct {
	Start   geometry.Vector3
	End     geometry.Vector3
	Length  float64
	PanelID int
	Side    int
}

// PanelInfo summarises one panel
type PanelInfo struct {
	Index     int
	Line      int
	Kind      gdf.PanelKind
	Area      float64
	Perimeter float64
	Centroid  geometry.Vector3
}

// MeasurementResult contains various measurements of a GDF model
type MeasurementResult struct {
	BoundingBox        geometry.BoundingBox
	Dimensions         geometry.Vector3
	WettedArea         float64
	PanelCount         int
	DeclaredPanelCount int
	FullBodyPanelCount int
	QuadCount          int
	TriangleCount      int
	CollapsedCount     int
	FreeSurfacePanels  int
	MinPanelArea       float64
	MaxPanelArea       float64
	EdgeCount          int
	MinEdgeLength      float64
	MaxEdgeLength      float64
	AvgEdgeLength      float64
	Panels             []PanelInfo
	AllEdges           []EdgeInfo
}

// AnalyzeModel performs comprehensive analysis on a GDF model. Coincident
// sides of degenerate triangles are not counted as edges. opts should be the
// options the model was parsed with so free-surface panels are counted with
// the same tolerance the parser used.
func AnalyzeModel(model *gdf.Model, opts ...gdf.Option) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:        model.BoundingBox(),
		WettedArea:         model.WettedArea(),
		PanelCount:         model.PanelCount(),
		DeclaredPanelCount: model.DeclaredPanelCount,
		FullBodyPanelCount: model.FullBodyPanelCount(),
		Panels:             make([]PanelInfo, 0, model.PanelCount()),
		AllEdges:           make([]EdgeInfo, 0, 4*model.PanelCount()),
	}
	result.Dimensions = result.BoundingBox.Size()

	fsTol := gdf.FreeSurfaceTolerance(model.ULEN, opts...)
	minArea := math.MaxFloat64
	maxArea := 0.0
	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for i, panel := range model.Panels {
		area := panel.Area()
		result.Panels = append(result.Panels, PanelInfo{
			Index:     i,
			Line:      panel.Line,
			Kind:      panel.Kind,
			Area:      area,
			Perimeter: panel.Perimeter(),
			Centroid:  panel.Centroid(),
		})
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)

		switch panel.Kind {
		case gdf.KindQuad:
			result.QuadCount++
		case gdf.KindTriangle:
			result.TriangleCount++
		default:
			result.CollapsedCount++
		}
		if panel.FreeSurfaceVertexCount(fsTol) == 4 {
			result.FreeSurfacePanels++
		}

		for side, length := range panel.SideLengths() {
			if panel.CoincidentSides[side] {
				continue
			}
			start, end := panel.Side(side)
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:   start,
				End:     end,
				Length:  length,
				PanelID: i,
				Side:    side,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	if result.PanelCount > 0 {
		result.MinPanelArea = minArea
		result.MaxPanelArea = maxArea
	}
	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	return edges[:min(max(count, 0), len(edges))]
}

// SortPanelsByArea returns a copy of the panels ordered by area
func SortPanelsByArea(panels []PanelInfo, descending bool) []PanelInfo {
	sorted := make([]PanelInfo, len(panels))
	copy(sorted, panels)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Area > sorted[j].Area
		}
		return sorted[i].Area < sorted[j].Area
	})
	return sorted
}

// DistanceBetweenPoints calculates the distance between two arbitrary points
func DistanceBetweenPoints(p1, p2 geometry.Vector3) float64 {
	return p1.Distance(p2)
}

// FindNearestVertex finds the panel vertex nearest to a given point
func FindNearestVertex(model *gdf.Model, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearestVertex geometry.Vector3
	minDistance := math.MaxFloat64

	for _, panel := range model.Panels {
		for _, vertex := range panel.Vertices {
			distance := point.Distance(vertex)
			if distance < minDistance {
				minDistance = distance
				nearestVertex = vertex
			}
		}
	}

	return nearestVertex, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}
