// Package vectorengine is an in-process vector similarity search engine.
// It stores fixed-dimensional float32 vectors keyed by caller-assigned
// uint64 identifiers, answers approximate k-nearest-neighbor queries under
// cosine distance, and checkpoints/restores its entire document set to and
// from a self-describing binary blob.
//
// The Engine type is the coordinator: it owns the authoritative document
// map, keeps a graph-based ANN index consistent with that map across
// mutations by rebuilding it in full on every Add/Update/Delete, memoizes
// identical queries in a bounded LRU cache with hit/miss accounting, and
// guarantees a lossless SaveToBytes/LoadFromBytes round trip.
package vectorengine

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/vectorengine/internal/ann"
	"github.com/Aman-CERP/vectorengine/internal/blob"
	"github.com/Aman-CERP/vectorengine/internal/engineconfig"
	"github.com/Aman-CERP/vectorengine/internal/fingerprint"
	"github.com/Aman-CERP/vectorengine/internal/querycache"
	"github.com/Aman-CERP/vectorengine/internal/vecerrors"
)

// rebuildParallelism is the number of shards rebuildLocked splits the
// document map into for concurrent point assembly. Below
// rebuildParallelismThreshold documents, the sequential path is cheaper
// than spinning up goroutines.
const (
	rebuildParallelism          = 4
	rebuildParallelismThreshold = 2 * rebuildParallelism
)

// DefaultCacheCapacity is the query cache capacity a plain New(dimension)
// uses.
const DefaultCacheCapacity = querycache.DefaultCapacity

// Result is a single search hit: a document id and its cosine distance
// from the query vector.
type Result struct {
	ID       uint64
	Distance float32
}

// CacheStats is a snapshot of the query cache's hit/miss counters.
type CacheStats = querycache.Stats

// Engine owns the authoritative document map, the derived ANN index
// snapshot, and the derived query cache. All three are exclusively owned
// by the Engine instance; callers that share an Engine across goroutines
// must still externally serialize access the way spec.md §5 requires,
// since Search mutates the cache and its stats — the mutex below guards
// against accidental concurrent misuse, it does not upgrade this into a
// concurrent-access contract.
type Engine struct {
	mu sync.RWMutex

	dimension  int
	documents  map[uint64][]float32
	index      *ann.Index
	annOptions ann.Options
	cache      *querycache.Cache[uint64, []Result]
}

// New creates an empty Engine fixed at dimension, using the engine-level
// default query cache capacity (100).
func New(dimension int) *Engine {
	return NewWithConfig(dimension, engineconfig.Default())
}

// NewWithConfig creates an empty Engine fixed at dimension, applying cfg's
// ANN/cache overrides where non-zero. This is an additive construction
// path beyond spec.md's bare New(dimension); the zero Config behaves
// identically to New.
func NewWithConfig(dimension int, cfg engineconfig.Config) *Engine {
	e := &Engine{
		dimension:  dimension,
		documents:  make(map[uint64][]float32),
		annOptions: ann.Options{M: cfg.M, EfSearch: cfg.EfSearch},
		cache:      querycache.New[uint64, []Result](cfg.CacheCapacity, DefaultCacheCapacity),
	}
	e.index = ann.Build(nil, e.annOptions)
	return e
}

// DocumentCount returns the number of documents currently stored.
func (e *Engine) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.documents)
}

// Dimension returns the engine's fixed vector dimension.
func (e *Engine) Dimension() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dimension
}

// Documents returns a read-only copy of the document map. Mutating the
// returned map does not affect the engine.
func (e *Engine) Documents() map[uint64][]float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[uint64][]float32, len(e.documents))
	for id, vec := range e.documents {
		cp := make([]float32, len(vec))
		copy(cp, vec)
		out[id] = cp
	}
	return out
}

// QueryCacheLen returns the number of entries currently in the query
// cache.
func (e *Engine) QueryCacheLen() int {
	return e.cache.Len()
}

// QueryCacheStats returns a snapshot of the query cache's hit/miss
// counters.
func (e *Engine) QueryCacheStats() CacheStats {
	return e.cache.Stats()
}

// Add inserts or overwrites the document with the given id. Overwriting an
// existing id matches update semantics: no ItemNotFound error is raised
// for add, per spec.md's resolution of this ambiguity.
func (e *Engine) Add(id uint64, vector []float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(vector) != e.dimension {
		return vecerrors.DimensionMismatch(e.dimension, len(vector))
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)
	e.documents[id] = stored

	e.rebuildLocked()
	return nil
}

// Update replaces the vector for an existing document id. It fails with
// ItemNotFound if id is not present.
func (e *Engine) Update(id uint64, vector []float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(vector) != e.dimension {
		return vecerrors.DimensionMismatch(e.dimension, len(vector))
	}
	if _, ok := e.documents[id]; !ok {
		return vecerrors.ItemNotFound(id)
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)
	e.documents[id] = stored

	e.rebuildLocked()
	return nil
}

// Delete removes a document by id. It fails with ItemNotFound if id is not
// present.
func (e *Engine) Delete(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.documents[id]; !ok {
		return vecerrors.ItemNotFound(id)
	}

	delete(e.documents, id)

	e.rebuildLocked()
	return nil
}

// rebuildLocked discards the current ANN snapshot and builds a fresh one
// from the complete document map, then clears the query cache. Callers
// must hold e.mu for writing. This full-rebuild-on-every-mutation strategy
// trades write cost for trivial map⇔index consistency and is the design
// spec.md §9 mandates over incremental insert/delete.
func (e *Engine) rebuildLocked() {
	points := e.collectPointsLocked()
	e.index = ann.Build(points, e.annOptions)
	e.cache.Clear()

	slog.Debug("vectorengine: rebuilt ann index",
		slog.Int("documents", len(e.documents)))
}

// collectPointsLocked assembles the document map into the slice ann.Build
// consumes. For large document sets the assembly is sharded across
// goroutines via errgroup, in the fan-out style the teacher's
// internal/search package uses for its own concurrent work (multi_query.go,
// pkg/searcher/fusion.go) — generalized here to a context-free fan-out
// since rebuildLocked has nothing to cancel. The graph itself is still
// built single-threaded afterward: coder/hnsw's Graph.Add is not safe for
// concurrent insertion.
func (e *Engine) collectPointsLocked() []ann.Point {
	ids := make([]uint64, 0, len(e.documents))
	for id := range e.documents {
		ids = append(ids, id)
	}

	points := make([]ann.Point, len(ids))
	if len(ids) < rebuildParallelismThreshold {
		for i, id := range ids {
			points[i] = ann.Point{ID: id, Vector: e.documents[id]}
		}
		return points
	}

	var g errgroup.Group
	chunk := (len(ids) + rebuildParallelism - 1) / rebuildParallelism
	for start := 0; start < len(ids); start += chunk {
		start, end := start, start+chunk
		if end > len(ids) {
			end = len(ids)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				id := ids[i]
				points[i] = ann.Point{ID: id, Vector: e.documents[id]}
			}
			return nil
		})
	}
	_ = g.Wait()

	return points
}

// searchEfSearch returns the ANN search width to request for a top_k
// query: max(3*k, 30), matching the original implementation's
// index.search(query, top_k, top_k*3) call and spec.md §4.4's documented
// default of max(3*k, 30).
func searchEfSearch(k int) int {
	ef := 3 * k
	if ef < 30 {
		ef = 30
	}
	return ef
}

// Search returns up to topK documents nearest to query under cosine
// distance, ascending by distance. Identical queries (by bitwise vector
// fingerprint) are served from the query cache; otherwise the ANN index is
// consulted, results are stable-sorted ascending and truncated to topK,
// then cached. An empty engine returns an empty result set, not an error.
func (e *Engine) Search(query []float32, topK int) ([]Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(query) != e.dimension {
		return nil, vecerrors.DimensionMismatch(e.dimension, len(query))
	}
	if topK <= 0 || len(e.documents) == 0 {
		return []Result{}, nil
	}

	fp := fingerprint.Of(query)
	if cached, ok := e.cache.Get(fp); ok {
		out := make([]Result, len(cached))
		copy(out, cached)
		return out, nil
	}

	// A configured EfSearch takes precedence over the per-query default.
	ef := searchEfSearch(topK)
	if e.annOptions.EfSearch > 0 {
		ef = e.annOptions.EfSearch
	}
	candidates := e.index.Search(query, topK, ef)

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, Result{ID: c.ID, Distance: c.Distance})
	}

	// Stable sort preserves the index's tie-breaking order for
	// equal-distance candidates, per spec.md §4.5 step 5.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > topK {
		results = results[:topK]
	}

	e.cache.Put(fp, results)

	out := make([]Result, len(results))
	copy(out, results)
	return out, nil
}

// SaveToBytes serializes the engine's document set as a versioned,
// length-delimited binary blob. The ANN index and query cache are not
// persisted; LoadFromBytes rebuilds the index from the decoded documents.
func (e *Engine) SaveToBytes() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state := blob.EngineState{
		FormatVersion: blob.FormatVersion,
		Documents:     make([]blob.Document, 0, len(e.documents)),
	}
	for id, vec := range e.documents {
		vecCopy := make([]float32, len(vec))
		copy(vecCopy, vec)
		state.Documents = append(state.Documents, blob.Document{ID: id, Vector: vecCopy})
	}

	return blob.Marshal(state), nil
}

// LoadFromBytes decodes a blob produced by SaveToBytes into a fresh Engine
// fixed at dimension, performing exactly one ANN rebuild. A vector whose
// length does not match dimension fails the entire load with a
// DeserializationError, rather than partially populating the engine.
func LoadFromBytes(data []byte, dimension int) (*Engine, error) {
	state, err := blob.Unmarshal(data)
	if err != nil {
		return nil, vecerrors.DeserializationFailed("failed to decode engine state", err)
	}

	for _, doc := range state.Documents {
		if len(doc.Vector) != dimension {
			return nil, vecerrors.DeserializationFailed(
				"decoded vector dimension does not match requested dimension", nil,
			).WithDetail("id", fmt.Sprintf("%d", doc.ID)).
				WithDetail("expected", fmt.Sprintf("%d", dimension)).
				WithDetail("got", fmt.Sprintf("%d", len(doc.Vector)))
		}
	}

	e := New(dimension)
	for _, doc := range state.Documents {
		e.documents[doc.ID] = doc.Vector
	}
	e.rebuildLocked()

	return e, nil
}
