package notion

import (
	"errors"
	"fmt"
)

// Error categories. Use errors.Is to test an error returned by this package
// against one of them.
var (
	// ErrNetwork marks transport-level failures: the request never produced
	// a complete HTTP response.
	ErrNetwork = errors.New("network failure")

	// ErrDecode marks response bodies that could not be decoded, including
	// after the lenient fallback where one applies.
	ErrDecode = errors.New("decode failure")

	// ErrFatal marks every other failure, such as error statuses returned
	// by the API or requests that could not be built.
	ErrFatal = errors.New("unexpected failure")
)

// Kind is the category of an Error.
type Kind int

const (
	// KindFatal is the category of ErrFatal.
	KindFatal Kind = iota
	// KindNetwork is the category of ErrNetwork.
	KindNetwork
	// KindDecode is the category of ErrDecode.
	KindDecode
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return "fatal"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindDecode:
		return ErrDecode
	default:
		return ErrFatal
	}
}

// Error is the error type returned by the client.
type Error struct {
	// Kind categorizes the failure.
	Kind Kind

	// Op names the API operation, e.g. "search" or "block children".
	Op string

	// Err is the underlying cause.
	Err error
}

// NewError wraps err with a kind and operation name.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("notion %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// DecodeError is the cause of a KindDecode error from the typed decoder. It
// keeps the raw response body so that a lenient decoder can try again.
type DecodeError struct {
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return "failed to decode response body: " + e.Err.Error()
}

// Unwrap returns the decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError is the error object Notion returns with non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d (%s): %s", e.Status, e.Code, e.Message)
}
