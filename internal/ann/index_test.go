package ann

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TS01: An empty Index returns an empty result set without error.
func TestIndex_EmptySearch(t *testing.T) {
	idx := Build(nil, Options{})
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Search([]float32{1, 0, 0}, 5, 30))
}

// TS02: Search finds the nearest point first.
func TestIndex_SearchOrdersByDistance(t *testing.T) {
	points := []Point{
		{ID: 1, Vector: []float32{1, 0, 0}},
		{ID: 2, Vector: []float32{0, 1, 0}},
		{ID: 3, Vector: []float32{0.95, 0.05, 0}},
	}
	idx := Build(points, Options{})
	require.Equal(t, 3, idx.Len())

	results := idx.Search([]float32{1, 0, 0}, 2, 30)
	require.Len(t, results, 2)
	assert.Equal(t, uint64(1), results[0].ID)
}

// TS03b: non-zero Options override the package's M/EfSearch defaults.
func TestBuild_OptionsOverrideDefaults(t *testing.T) {
	points := []Point{
		{ID: 1, Vector: []float32{1, 0}},
		{ID: 2, Vector: []float32{0, 1}},
	}

	idx := Build(points, Options{M: 4, EfSearch: 50})
	assert.Equal(t, 4, idx.graph.M)
	assert.Equal(t, 50, idx.graph.EfSearch)
}

// TS03c: zero-value Options fall back to the package defaults.
func TestBuild_ZeroOptionsUseDefaults(t *testing.T) {
	idx := Build(nil, Options{})
	assert.Equal(t, DefaultM, idx.graph.M)
	assert.Equal(t, DefaultEfSearch, idx.graph.EfSearch)
}

// TS03: DebugExport/DebugImport round-trips a built graph's point count.
func TestIndex_DebugExportImportRoundTrip(t *testing.T) {
	points := []Point{
		{ID: 10, Vector: []float32{1, 0}},
		{ID: 20, Vector: []float32{0, 1}},
	}
	idx := Build(points, Options{})

	var buf bytes.Buffer
	require.NoError(t, idx.DebugExport(&buf))

	restored, err := DebugImport(&buf)
	require.NoError(t, err)
	assert.Equal(t, idx.Len(), restored.Len())
}
