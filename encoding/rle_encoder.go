package encoding

import (
	"fmt"
	"strconv"

	"github.com/arloliu/rle/errs"
)

// RLEEncoder turns raw bytes into an escaped run-length token stream.
type RLEEncoder struct {
	cfg *RLEConfig
}

// NewRLEEncoder creates an encoder with the given options.
//
// Returns:
//   - *RLEEncoder: Configured encoder
//   - error: Invalid option value
func NewRLEEncoder(opts ...RLEOption) (*RLEEncoder, error) {
	cfg, err := newRLEConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &RLEEncoder{cfg: cfg}, nil
}

// Encode returns the token stream of src.
//
// Each maximal run of identical bytes becomes one token. Before every token the
// output buffer reserves room for the worst case emission, so multi-digit run
// lengths never overflow a chunk.
//
// Parameters:
//   - src: Raw input, must be non-nil and non-empty
//
// Returns:
//   - []byte: Encoded stream with cap == len, owned by the caller
//   - error: ErrNullInput, ErrInvalidLength or ErrMemoryAllocation
func (e *RLEEncoder) Encode(src []byte) ([]byte, error) {
	if src == nil {
		return nil, errs.ErrNullInput
	}
	if len(src) == 0 {
		return nil, errs.ErrInvalidLength
	}

	buf, err := e.cfg.newBuffer()
	if err != nil {
		return nil, err
	}

	var token [maxEmission]byte
	last := len(src) - 1
	count := uint64(1)
	for i := 0; i <= last; i++ {
		if i < last && src[i+1] == src[i] {
			count++
			continue
		}

		t := appendSymbol(token[:0], src[i])
		t = strconv.AppendUint(t, count, 10)
		if _, err := buf.Write(t); err != nil {
			return nil, fmt.Errorf("encode run ending at offset %d: %w", i, err)
		}
		count = 1
	}

	return buf.ShrinkToFit(), nil
}

// Encode encodes src with a one-off encoder built from opts.
func Encode(src []byte, opts ...RLEOption) ([]byte, error) {
	enc, err := NewRLEEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(src)
}
