// Package ann wraps github.com/coder/hnsw's pure-Go HNSW graph as the
// vector engine's approximate-nearest-neighbor backend. Unlike
// internal/store.HNSWStore in the teacher codebase, this wrapper never
// mutates a graph in place: the engine coordinator always rebuilds a fresh
// Index from the full document set, so there is no string↔uint64 id
// mapping layer and no lazy-deletion workaround to carry over.
package ann

import (
	"bufio"
	"io"

	"github.com/coder/hnsw"

	"github.com/Aman-CERP/vectorengine/internal/distance"
)

// Graph construction/search parameters. These mirror the defaults the
// teacher's HNSWStore derives from coder/hnsw: M controls the max
// neighbors per layer, EfSearch the query-time search width.
const (
	DefaultM        = 16
	DefaultEfSearch = 20
	// defaultMl is the level-generation factor. It is fixed at 0.25 and
	// does not follow M (1/ln(16) would be about 0.36).
	defaultMl = 0.25
)

// Point is a single vector and its caller-assigned identifier, the unit
// Build consumes.
type Point struct {
	ID     uint64
	Vector []float32
}

// Options overrides the graph construction parameters Build would otherwise
// default. A zero field means "use the package default for that field",
// mirroring engineconfig.Config's zero-means-default convention.
type Options struct {
	M        int
	EfSearch int
}

// Result is a single search hit: an identifier and its distance from the
// query, consistent with the graph's configured metric.
type Result struct {
	ID       uint64
	Distance float32
}

// Index is a snapshot over a fixed point set. Callers that want a different
// point set build a new Index rather than mutating this one. Search is not
// safe to call concurrently on the same Index when efSearch overrides are
// used, since coder/hnsw only exposes EfSearch as a graph-wide field; the
// engine coordinator, which is itself single-threaded per call, is the only
// caller.
type Index struct {
	graph *hnsw.Graph[uint64]
}

// Build constructs a fresh HNSW snapshot from points, applying opts' M and
// EfSearch overrides where non-zero. An empty points slice yields a valid,
// empty Index.
func Build(points []Point, opts Options) *Index {
	graph := hnsw.NewGraph[uint64]()
	// distance.Cosine is the spec's own pluggable distance kernel, not
	// coder/hnsw's built-in hnsw.CosineDistance: the metric is
	// configuration the engine owns, the ANN library is just the backend
	// that consumes it.
	graph.Distance = distance.Cosine

	graph.M = DefaultM
	if opts.M > 0 {
		graph.M = opts.M
	}

	graph.EfSearch = DefaultEfSearch
	if opts.EfSearch > 0 {
		graph.EfSearch = opts.EfSearch
	}

	graph.Ml = defaultMl

	for _, p := range points {
		graph.Add(hnsw.MakeNode(p.ID, p.Vector))
	}

	return &Index{graph: graph}
}

// Len returns the number of points in the snapshot.
func (idx *Index) Len() int {
	return idx.graph.Len()
}

// Search returns up to k candidates ordered by increasing distance under
// the graph's configured metric. efSearch overrides the graph's configured
// search width for this call only, letting the coordinator request a wider
// candidate pool than k when it wants one; a non-positive efSearch leaves
// the graph's default in place.
func (idx *Index) Search(query []float32, k int, efSearch int) []Result {
	if idx.graph.Len() == 0 || k <= 0 {
		return []Result{}
	}

	if efSearch > 0 {
		original := idx.graph.EfSearch
		idx.graph.EfSearch = efSearch
		defer func() { idx.graph.EfSearch = original }()
	}

	nodes := idx.graph.Search(query, k)

	results := make([]Result, 0, len(nodes))
	for _, node := range nodes {
		results = append(results, Result{
			ID:       node.Key,
			Distance: idx.graph.Distance(query, node.Value),
		})
	}
	return results
}

// DebugExport serializes the graph's internal structure, exposed only for
// test/tooling parity with the teacher's on-disk index persistence. The
// engine's document-blob save/load path never calls this: per spec, the ANN
// graph itself is never persisted, only rebuilt from the document map.
func (idx *Index) DebugExport(w io.Writer) error {
	return idx.graph.Export(w)
}

// DebugImport is the counterpart to DebugExport, for the same test/tooling
// purpose only.
func DebugImport(r io.Reader) (*Index, error) {
	graph := hnsw.NewGraph[uint64]()
	if err := graph.Import(bufio.NewReader(r)); err != nil {
		return nil, err
	}
	return &Index{graph: graph}, nil
}
