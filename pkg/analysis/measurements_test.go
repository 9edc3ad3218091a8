package analysis

import (
	"testing"

	"github.com/philipparndt/gogdf/pkg/gdf"
	"github.com/philipparndt/gogdf/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pontoonGDF = `pontoon
1 9.80665
1 0
3
0 0 -1 2 0 -1 2 1 -1 0 1 -1
0 0 0 1 0 0 1 1 0 0 1 0
2 0 -1 2 0 0 2 0 0 2 1 -1
`

func parseModel(t *testing.T) *gdf.Model {
	t.Helper()
	model, diags := gdf.Parse(pontoonGDF)
	require.NotNil(t, model, diags.Err())
	return model
}

func TestAnalyzeModel(t *testing.T) {
	result := AnalyzeModel(parseModel(t))

	assert.Equal(t, 3, result.PanelCount)
	assert.Equal(t, 3, result.DeclaredPanelCount)
	assert.Equal(t, 6, result.FullBodyPanelCount)
	assert.Equal(t, 2, result.QuadCount)
	assert.Equal(t, 1, result.TriangleCount)
	assert.Equal(t, 1, result.FreeSurfacePanels)
	assert.InDelta(t, 2+1+0.5, result.WettedArea, 1e-12)
	assert.InDelta(t, 0.5, result.MinPanelArea, 1e-12)
	assert.InDelta(t, 2.0, result.MaxPanelArea, 1e-12)

	// the coincident side of the triangle is skipped
	assert.Equal(t, 11, result.EdgeCount)
	assert.InDelta(t, 1.0, result.MinEdgeLength, 1e-12)
	assert.InDelta(t, 2.0, result.MaxEdgeLength, 1e-12)

	assert.Equal(t, geometry.NewVector3(2, 1, 1), result.Dimensions)
	require.Len(t, result.Panels, 3)
	assert.Equal(t, 5, result.Panels[0].Line)
}

func TestEdgeQueries(t *testing.T) {
	result := AnalyzeModel(parseModel(t))

	longest := FindLongestEdges(result, 2)
	require.Len(t, longest, 2)
	assert.InDelta(t, 2.0, longest[0].Length, 1e-12)
	assert.GreaterOrEqual(t, longest[0].Length, longest[1].Length)

	shortest := FindShortestEdges(result, 100)
	assert.Len(t, shortest, result.EdgeCount)
	assert.InDelta(t, 1.0, shortest[0].Length, 1e-12)

	between := FindEdgesByLength(result, 1.5, 2.5)
	for _, edge := range between {
		assert.InDelta(t, 2.0, edge.Length, 1e-12)
	}
	assert.Len(t, between, 2)
}

func TestSortPanelsByArea(t *testing.T) {
	result := AnalyzeModel(parseModel(t))

	largest := SortPanelsByArea(result.Panels, true)
	assert.Equal(t, 0, largest[0].Index)
	smallest := SortPanelsByArea(result.Panels, false)
	assert.Equal(t, 2, smallest[0].Index)
	// the input order is untouched
	assert.Equal(t, 0, result.Panels[0].Index)
}

func TestFindNearestVertex(t *testing.T) {
	vertex, dist := FindNearestVertex(parseModel(t), geometry.NewVector3(2.1, 1.1, -1))
	assert.Equal(t, geometry.NewVector3(2, 1, -1), vertex)
	assert.InDelta(t, 0.1414213562, dist, 1e-9)
}

func TestFormatMeasurement(t *testing.T) {
	assert.Equal(t, "1.500000 units", FormatMeasurement(1.5, ""))
	assert.Equal(t, "2.000000 m", FormatMeasurement(2, "m"))
}

func TestAnalyzeModelUsesParserTolerance(t *testing.T) {
	model, diags := gdf.Parse("shallow\n1 9.8\n0 0\n1\n0 0 -0.1 1 0 -0.1 1 1 -0.1 0 1 -0.1\n")
	require.NotNil(t, model, diags.Err())

	assert.Equal(t, 0, AnalyzeModel(model).FreeSurfacePanels)
	assert.Equal(t, 1, AnalyzeModel(model, gdf.WithFreeSurfaceTolerance(0.2)).FreeSurfacePanels)
	// a larger coincidence factor widens the default free-surface tolerance too
	assert.Equal(t, 1, AnalyzeModel(model, gdf.WithCoincidenceFactor(0.5)).FreeSurfacePanels)
}
