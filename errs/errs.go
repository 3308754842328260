// Package errs defines the sentinel errors returned by the rle packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is.
package errs

import "errors"

var (
	// ErrNullInput is returned when a transform receives a nil input buffer.
	ErrNullInput = errors.New("rle: nil input")

	// ErrInvalidLength is returned when a transform receives a zero-length input.
	ErrInvalidLength = errors.New("rle: zero-length input")

	// ErrMemoryAllocation is returned when an output buffer cannot grow to the
	// required size, either because it would exceed the configured maximum size
	// or because the size overflows.
	ErrMemoryAllocation = errors.New("rle: output buffer allocation failed")

	// ErrUnsupportedExtension is returned when a file does not carry the suffix
	// expected for the requested direction.
	ErrUnsupportedExtension = errors.New("rle: unsupported file extension")

	// ErrMalformedEncoding is returned when the decoder meets a token that does
	// not follow the encoded stream grammar.
	ErrMalformedEncoding = errors.New("rle: malformed encoding")

	// ErrRoundTripMismatch is returned when a verified transform does not
	// reproduce its input.
	ErrRoundTripMismatch = errors.New("rle: round trip mismatch")

	// ErrUnknownCodec is returned when a codec lookup fails.
	ErrUnknownCodec = errors.New("rle: unknown codec")
)
