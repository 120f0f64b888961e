// Package fingerprint produces a deterministic 64-bit hash of a query
// vector, used solely as the vectorengine query cache's key.
package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Of hashes the bitwise representation of each float32 in vec, so +0.0 and
// -0.0 hash distinctly and NaN bit patterns map to themselves. Collisions
// are acceptable as cache pollution only: two different vectors hashing to
// the same fingerprint is a rare correctness footgun the caller accepts in
// exchange for a fast, allocation-light cache key (see vectorengine's
// query-cache design notes).
func Of(vec []float32) uint64 {
	h := xxhash.New()

	var buf [4]byte
	for _, v := range vec {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
