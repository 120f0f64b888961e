package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TS01: Identical vectors fingerprint identically.
func TestOf_Deterministic(t *testing.T) {
	v := []float32{0.1, 0.2, 0.3}
	assert.Equal(t, Of(v), Of(append([]float32{}, v...)))
}

// TS02: Different content fingerprints (almost certainly) differently.
func TestOf_DifferentContentDiffers(t *testing.T) {
	a := []float32{0.1, 0.2, 0.3}
	b := []float32{0.1, 0.2, 0.30001}
	assert.NotEqual(t, Of(a), Of(b))
}

// TS03: +0.0 and -0.0 hash distinctly, since hashing is bitwise not numeric.
func TestOf_PositiveAndNegativeZeroDiffer(t *testing.T) {
	posZero := []float32{0.0}
	negZero := []float32{math.Float32frombits(0x80000000)}
	assert.NotEqual(t, Of(posZero), Of(negZero))
}

// TS04: NaN bit patterns map to themselves deterministically.
func TestOf_NaNIsDeterministic(t *testing.T) {
	nan := []float32{float32(math.NaN())}
	assert.Equal(t, Of(nan), Of(nan))
}

// TS05: Empty vector still produces a stable fingerprint.
func TestOf_EmptyVector(t *testing.T) {
	assert.Equal(t, Of(nil), Of([]float32{}))
}
