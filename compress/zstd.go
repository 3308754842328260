package compress

// ZstdCompressor provides Zstandard compression.
//
// It serves as the high-ratio reference point next to RLE in codec comparisons.
// The pure Go klauspost/compress implementation is used by default; building with
// the gozstd tag (and cgo enabled) switches to the valyala/gozstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
