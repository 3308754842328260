// Package rle provides a byte-oriented run-length codec for text files in which
// digit bytes are escaped, so encoded streams stay unambiguous even when the
// original text contains numbers.
//
// # Encoded Form
//
// Every maximal run of identical bytes becomes a symbol followed by the run
// length in decimal:
//
//	"aaabbbccc" -> "a3b3c3"
//	"a1b2"      -> "a1\11b1\21"
//	"\n\n"      -> "\n2" (backslash, 'n', '2')
//
// Digits, newlines and the backslash itself are written as two-byte escape
// pairs. See the encoding package for the grammar.
//
// # Basic Usage
//
// In-memory transforms:
//
//	encoded, err := rle.Encode([]byte("aaabbbccc"))
//	decoded, err := rle.Decode(encoded)
//
// File transforms follow the .txt/.rle naming contract and never overwrite an
// existing file:
//
//	out, err := rle.CompressFile(ctx, "notes.txt")   // notes.rle, notes_1.rle, ...
//	out, err = rle.DecompressFile(ctx, "notes.rle") // notes.txt, notes_1.txt, ...
//
// # Package Structure
//
// This package wraps the encoding and fileop packages for the common cases.
// Use encoding.RLEEncoder, encoding.RLEDecoder and fileop.Processor directly
// for custom buffer sizes, logging or an alternative file system.
package rle

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arloliu/rle/encoding"
	"github.com/arloliu/rle/fileop"
)

// Encode run-length encodes src with default buffer settings.
//
// Returns errs.ErrNullInput for a nil src and errs.ErrInvalidLength for an
// empty one.
func Encode(src []byte, opts ...encoding.RLEOption) ([]byte, error) {
	return encoding.Encode(src, opts...)
}

// Decode reverses Encode.
//
// Returns errs.ErrMalformedEncoding, wrapped with the offset of the offending
// token, when src does not follow the encoded grammar.
func Decode(src []byte, opts ...encoding.RLEOption) ([]byte, error) {
	return encoding.Decode(src, opts...)
}

// NewFileProcessor creates a file processor on the local file system.
func NewFileProcessor(logger zerolog.Logger, opts ...fileop.ProcessorOption) (*fileop.Processor, error) {
	return fileop.NewProcessor(afero.NewOsFs(), logger, opts...)
}

// CompressFile encodes the .txt file at path into a new .rle file and returns
// the path of the created file.
func CompressFile(ctx context.Context, path string) (string, error) {
	p, err := NewFileProcessor(zerolog.Nop())
	if err != nil {
		return "", err
	}

	return p.CompressFile(ctx, path)
}

// DecompressFile decodes the .rle file at path into a new .txt file and
// returns the path of the created file.
func DecompressFile(ctx context.Context, path string) (string, error) {
	p, err := NewFileProcessor(zerolog.Nop())
	if err != nil {
		return "", err
	}

	return p.DecompressFile(ctx, path)
}
