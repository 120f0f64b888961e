// Package vecerrors provides the vector engine's structured error type,
// adapted from the teacher's internal/errors.AmanError taxonomy to the
// four error kinds spec.md §7 names. The retry/circuit-breaker machinery
// that taxonomy carries for network operations is dropped here: nothing in
// this engine retries or blocks on I/O (see spec.md §5), so there is
// nothing for those levers to apply to.
package vecerrors

// Category classifies a VectorError for programmatic handling.
type Category string

const (
	CategoryValidation    Category = "VALIDATION"
	CategoryNotFound      Category = "NOT_FOUND"
	CategorySerialization Category = "SERIALIZATION"
)

// Error codes, one per spec.md §7 kind.
const (
	// ErrCodeDimensionMismatch fires when a supplied vector's length does
	// not equal the engine's configured dimension.
	ErrCodeDimensionMismatch = "ERR_401_DIMENSION_MISMATCH"

	// ErrCodeItemNotFound fires when Update or Delete references an
	// unknown document id.
	ErrCodeItemNotFound = "ERR_404_ITEM_NOT_FOUND"

	// ErrCodeSerializationFailed fires when encoding the engine state
	// blob fails.
	ErrCodeSerializationFailed = "ERR_501_SERIALIZATION_FAILED"

	// ErrCodeDeserializationFailed fires when decoding a blob fails:
	// malformed bytes, an unsupported format_version, or a vector whose
	// length does not match the caller-supplied dimension.
	ErrCodeDeserializationFailed = "ERR_502_DESERIALIZATION_FAILED"
)

func categoryFromCode(code string) Category {
	switch code {
	case ErrCodeDimensionMismatch:
		return CategoryValidation
	case ErrCodeItemNotFound:
		return CategoryNotFound
	case ErrCodeSerializationFailed, ErrCodeDeserializationFailed:
		return CategorySerialization
	default:
		return CategoryValidation
	}
}
