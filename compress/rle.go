package compress

import (
	"github.com/arloliu/rle/encoding"
)

// RLECompressor adapts the escaped-digit run-length transform to the Codec interface.
//
// Unlike the general purpose codecs it keeps the transform's input contract:
// nil input fails with errs.ErrNullInput and empty input with errs.ErrInvalidLength.
type RLECompressor struct {
	opts []encoding.RLEOption
}

var _ Codec = (*RLECompressor)(nil)

// NewRLECompressor creates an RLE codec. The options configure both directions.
func NewRLECompressor(opts ...encoding.RLEOption) RLECompressor {
	return RLECompressor{opts: opts}
}

// Compress encodes data into an RLE token stream.
func (c RLECompressor) Compress(data []byte) ([]byte, error) {
	return encoding.Encode(data, c.opts...)
}

// Decompress expands an RLE token stream.
func (c RLECompressor) Decompress(data []byte) ([]byte, error) {
	return encoding.Decode(data, c.opts...)
}
