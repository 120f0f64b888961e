package vecerrors

import "fmt"

// VectorError is the structured error type returned from every public
// vectorengine operation. It carries enough context to log, present to a
// user, or branch on programmatically via errors.Is/errors.As, the same
// contract the teacher's AmanError offers its callers.
type VectorError struct {
	// Code is one of the ErrCode constants in codes.go.
	Code string

	// Message is the human-readable description.
	Message string

	// Category classifies the error for programmatic handling.
	Category Category

	// Details carries additional key-value context, e.g. expected/actual
	// dimension.
	Details map[string]string

	// Cause is the underlying error, if any (e.g. a protobuf decode
	// error wrapped by ErrCodeDeserializationFailed).
	Cause error
}

// Error implements the error interface.
func (e *VectorError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is/errors.As to see
// through a VectorError to its cause.
func (e *VectorError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a VectorError with the same Code, so
// errors.Is(err, vecerrors.New(vecerrors.ErrCodeItemNotFound, "", nil))
// works as a sentinel-style check.
func (e *VectorError) Is(target error) bool {
	t, ok := target.(*VectorError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail attaches a key-value detail and returns the error for
// chaining.
func (e *VectorError) WithDetail(key, value string) *VectorError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a VectorError with the given code and message. Category is
// derived from the code.
func New(code, message string, cause error) *VectorError {
	return &VectorError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Cause:    cause,
	}
}

// DimensionMismatch builds the spec's DimensionMismatch error for a vector
// of length got where expected was required.
func DimensionMismatch(expected, got int) *VectorError {
	return New(
		ErrCodeDimensionMismatch,
		fmt.Sprintf("vector has dimension %d, engine expects %d", got, expected),
		nil,
	).WithDetail("expected", fmt.Sprintf("%d", expected)).
		WithDetail("got", fmt.Sprintf("%d", got))
}

// ItemNotFound builds the spec's ItemNotFound error for the given document
// id.
func ItemNotFound(id uint64) *VectorError {
	return New(
		ErrCodeItemNotFound,
		fmt.Sprintf("no document with id %d", id),
		nil,
	).WithDetail("id", fmt.Sprintf("%d", id))
}

// SerializationFailed wraps a lower-level encoding failure.
func SerializationFailed(cause error) *VectorError {
	return New(ErrCodeSerializationFailed, cause.Error(), cause)
}

// DeserializationFailed wraps a lower-level decoding failure.
func DeserializationFailed(message string, cause error) *VectorError {
	return New(ErrCodeDeserializationFailed, message, cause)
}

// FormatForCLI renders err in the teacher's concise terminal-output shape,
// for cmd/vecbench.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}
	ve, ok := err.(*VectorError)
	if !ok {
		return fmt.Sprintf("Error: %s\n", err.Error())
	}

	out := fmt.Sprintf("Error: %s\n  Code: %s\n", ve.Message, ve.Code)
	for k, v := range ve.Details {
		out += fmt.Sprintf("  %s: %s\n", k, v)
	}
	return out
}
