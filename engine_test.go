package vectorengine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/vectorengine/internal/engineconfig"
	"github.com/Aman-CERP/vectorengine/internal/vecerrors"
)

// TS01: Creation. new(1536) -> dimension()==1536, document_count()==0.
func TestEngine_New(t *testing.T) {
	e := New(1536)
	assert.Equal(t, 1536, e.Dimension())
	assert.Equal(t, 0, e.DocumentCount())
	assert.Equal(t, 0, e.QueryCacheLen())
}

// TS02: Add + search miss/hit.
func TestEngine_AddAndSearchMissThenHit(t *testing.T) {
	e := New(3)
	require.NoError(t, e.Add(1, []float32{0.1, 0.2, 0.3}))
	require.NoError(t, e.Add(2, []float32{0.9, 0.8, 0.7}))

	results, err := e.Search([]float32{0.8, 0.8, 0.8}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(2), results[0].ID)
	assert.Equal(t, uint64(1), e.QueryCacheStats().Misses)

	results2, err := e.Search([]float32{0.8, 0.8, 0.8}, 1)
	require.NoError(t, err)
	assert.Equal(t, results, results2)
	assert.Equal(t, uint64(1), e.QueryCacheStats().Hits)
}

// TS03: Cache invalidation on add.
func TestEngine_AddInvalidatesCache(t *testing.T) {
	e := New(3)
	require.NoError(t, e.Add(1, []float32{0.1, 0.2, 0.3}))
	require.NoError(t, e.Add(2, []float32{0.9, 0.8, 0.7}))

	_, err := e.Search([]float32{0.8, 0.8, 0.8}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, e.QueryCacheLen())

	require.NoError(t, e.Add(3, []float32{0.85, 0.85, 0.85}))
	assert.Equal(t, 0, e.QueryCacheLen())
	assert.Equal(t, CacheStats{}, e.QueryCacheStats())

	results, err := e.Search([]float32{0.8, 0.8, 0.8}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(3), results[0].ID)
}

// TS04: Delete + rebuild.
func TestEngine_DeleteRebuilds(t *testing.T) {
	e := New(3)
	require.NoError(t, e.Add(1, []float32{0.1, 0.1, 0.1}))
	require.NoError(t, e.Add(2, []float32{0.9, 0.9, 0.9}))

	require.NoError(t, e.Delete(2))

	results, err := e.Search([]float32{0.9, 0.9, 0.9}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(1), results[0].ID)

	_, ok := e.Documents()[2]
	assert.False(t, ok)
}

// TS05: Update.
func TestEngine_Update(t *testing.T) {
	e := New(3)
	require.NoError(t, e.Add(1, []float32{-1, 0, 0}))
	require.NoError(t, e.Add(2, []float32{0, 1, 0}))

	require.NoError(t, e.Update(2, []float32{0, 0, 1}))

	results, err := e.Search([]float32{0.1, 0.1, 0.9}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(2), results[0].ID)
}

// TS06: Round trip.
func TestEngine_SaveLoadRoundTrip(t *testing.T) {
	e := New(3)
	require.NoError(t, e.Add(1, []float32{1.0, 0.1, 0.2}))
	require.NoError(t, e.Add(2, []float32{0.1, 1.0, 0.3}))

	data, err := e.SaveToBytes()
	require.NoError(t, err)

	loaded, err := LoadFromBytes(data, e.Dimension())
	require.NoError(t, err)

	assert.Equal(t, e.Dimension(), loaded.Dimension())
	assert.Equal(t, e.DocumentCount(), loaded.DocumentCount())
	assert.Equal(t, e.Documents(), loaded.Documents())
}

// TS07: Error surfaces.
func TestEngine_ErrorSurfaces(t *testing.T) {
	e := New(3)

	err := e.Add(1, []float32{0.1, 0.2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vecerrors.DimensionMismatch(0, 0)))
	assert.Equal(t, 0, e.DocumentCount())

	err = e.Delete(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vecerrors.ItemNotFound(0)))

	err = e.Update(99, []float32{0, 0, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vecerrors.ItemNotFound(0)))
}

// TS08: Search on an empty engine returns an empty sequence, not an error.
func TestEngine_SearchOnEmptyEngine(t *testing.T) {
	e := New(4)
	results, err := e.Search([]float32{1, 2, 3, 4}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TS09: Search with k > document_count() returns all documents, sorted.
func TestEngine_SearchKLargerThanDocumentCount(t *testing.T) {
	e := New(2)
	require.NoError(t, e.Add(1, []float32{1, 0}))
	require.NoError(t, e.Add(2, []float32{0, 1}))
	require.NoError(t, e.Add(3, []float32{0.9, 0.1}))

	results, err := e.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
}

// TS10: LRU cache at capacity C retains exactly C entries after C+1 distinct
// queries.
func TestEngine_QueryCacheRespectsCapacity(t *testing.T) {
	e := NewWithConfig(2, engineconfig.Config{CacheCapacity: 2})
	require.NoError(t, e.Add(1, []float32{1, 0}))
	require.NoError(t, e.Add(2, []float32{0, 1}))

	queries := [][]float32{
		{1, 0},
		{0.9, 0.1},
		{0.8, 0.2},
	}
	for _, q := range queries {
		_, err := e.Search(q, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, e.QueryCacheLen())
}

// TS12: NewWithConfig's M/EfSearch overrides reach the ANN index Build uses,
// not just the Engine's own fields.
func TestEngine_ConfigMAndEfSearchReachANNIndex(t *testing.T) {
	e := NewWithConfig(2, engineconfig.Config{M: 4, EfSearch: 64})
	require.NoError(t, e.Add(1, []float32{1, 0}))

	assert.Equal(t, 4, e.annOptions.M)
	assert.Equal(t, 64, e.annOptions.EfSearch)
}

// TS11: Loading a blob whose vectors mismatch the requested dimension fails
// the entire load.
func TestLoadFromBytes_RejectsDimensionMismatch(t *testing.T) {
	e := New(3)
	require.NoError(t, e.Add(1, []float32{1, 2, 3}))

	data, err := e.SaveToBytes()
	require.NoError(t, err)

	_, err = LoadFromBytes(data, 4)
	require.Error(t, err)
}

// TS12: LoadFromBytes rejects malformed bytes.
func TestLoadFromBytes_RejectsMalformedBytes(t *testing.T) {
	_, err := LoadFromBytes([]byte{0xff, 0xff, 0xff}, 3)
	assert.Error(t, err)
}
