package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/rle/encoding"
	"github.com/arloliu/rle/errs"
)

// S2Compressor compresses payloads as S2 blocks.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data into one S2 block. Empty input yields nil.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(make([]byte, s2.MaxEncodedLen(len(data))), data), nil
}

// Decompress decompresses one S2 block. Blocks announcing more than
// encoding.DefaultMaxSize bytes are rejected before allocation.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > encoding.DefaultMaxSize {
		return nil, fmt.Errorf("%w: s2 block of %d bytes", errs.ErrMemoryAllocation, n)
	}

	return s2.Decode(make([]byte, n), data)
}
