package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/rle/errs"
)

// RLEDecoder expands an escaped run-length token stream back into raw bytes.
type RLEDecoder struct {
	cfg *RLEConfig
}

// NewRLEDecoder creates a decoder with the given options.
func NewRLEDecoder(opts ...RLEOption) (*RLEDecoder, error) {
	cfg, err := newRLEConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &RLEDecoder{cfg: cfg}, nil
}

// Decode returns the raw bytes described by the token stream src.
//
// Malformed streams are rejected with errs.ErrMalformedEncoding:
//   - a symbol with no run length digits after it (including a trailing backslash)
//   - a run length longer than MaxCountDigits digits or above math.MaxUint64
//   - a run length of zero
//
// Returns:
//   - []byte: Decoded bytes with cap == len, owned by the caller
//   - error: ErrNullInput, ErrInvalidLength, ErrMalformedEncoding or ErrMemoryAllocation
func (d *RLEDecoder) Decode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, errs.ErrNullInput
	}
	if len(src) == 0 {
		return nil, errs.ErrInvalidLength
	}

	buf, err := d.cfg.newBuffer()
	if err != nil {
		return nil, err
	}

	n := len(src)
	for i := 0; i < n; {
		tokenStart := i
		symbol, width := readSymbol(src, i)
		i += width

		end := i
		for end < n && isDigit(src[end]) {
			end++
		}

		count, err := parseCount(src[i:end])
		if err != nil {
			return nil, fmt.Errorf("token at offset %d: %w", tokenStart, err)
		}

		if err := buf.WriteRepeated(symbol, count); err != nil {
			return nil, fmt.Errorf("decode token at offset %d: %w", tokenStart, err)
		}
		i = end
	}

	return buf.ShrinkToFit(), nil
}

// Decode decodes src with a one-off decoder built from opts.
func Decode(src []byte, opts ...RLEOption) ([]byte, error) {
	dec, err := NewRLEDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(src)
}

// parseCount parses a run length field of 1..MaxCountDigits decimal digits.
func parseCount(digits []byte) (uint64, error) {
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: missing run length", errs.ErrMalformedEncoding)
	}
	if len(digits) > MaxCountDigits {
		return 0, fmt.Errorf("%w: run length has %d digits, limit is %d",
			errs.ErrMalformedEncoding, len(digits), MaxCountDigits)
	}

	var count uint64
	for _, c := range digits {
		d := uint64(c - '0')
		if count > (math.MaxUint64-d)/10 {
			return 0, fmt.Errorf("%w: run length overflows uint64", errs.ErrMalformedEncoding)
		}
		count = count*10 + d
	}

	if count == 0 {
		return 0, fmt.Errorf("%w: zero run length", errs.ErrMalformedEncoding)
	}

	return count, nil
}
