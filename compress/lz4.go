package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/rle/encoding"
	"github.com/arloliu/rle/errs"
)

// lz4MaxDecompressedSize bounds the output of a single LZ4 block.
const lz4MaxDecompressedSize = min(128*1024*1024, encoding.DefaultMaxSize)

// lz4CompressorPool pools lz4.Compressor instances, which carry a hash table
// worth reusing across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses payloads as a single raw LZ4 block.
//
// A raw block does not record its decompressed size, so Decompress grows its
// output buffer until the block fits, up to lz4MaxDecompressedSize.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into one LZ4 block. Empty input yields nil.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses one LZ4 block.
//
// The first attempt uses four times the block size; each short-buffer failure
// doubles it. The block decoder reports corrupt input as a short buffer too, so
// the bound is kept well below encoding.DefaultMaxSize. Returns
// errs.ErrMemoryAllocation once the buffer would pass lz4MaxDecompressedSize.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	const maxSize = lz4MaxDecompressedSize

	bufSize := min(len(data)*4, maxSize)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if bufSize >= maxSize {
			return nil, fmt.Errorf("%w: lz4 block larger than %d bytes", errs.ErrMemoryAllocation, maxSize)
		}
		bufSize = min(bufSize*2, maxSize)
	}
}
