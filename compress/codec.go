package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/rle/errs"
	"github.com/arloliu/rle/format"
	"github.com/arloliu/rle/internal/hash"
)

// Compressor compresses a whole in-memory payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Example:
//
//	decompressor := NewRLECompressor()
//	originalData, err := decompressor.Decompress(encoded)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with incompatible algorithm
	//   - Returns error if decompression buffer allocation fails
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one measured compress/decompress cycle.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data
	DecompressionTimeNs int64

	// Checksum is the xxHash64 digest of the original data
	Checksum uint64

	// RoundTrip reports whether decompression reproduced the original data
	RoundTrip bool
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values greater than 1.0 indicate expansion, which is common for RLE on text
// without long runs.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
//
// Negative values mean the compressed form is larger than the original.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses and decompresses data with the codec of compressionType
// and reports sizes, timings and whether the round trip reproduced data.
//
// Returns:
//   - CompressionStats: Measured statistics
//   - error: Unknown codec, or a compression or decompression failure
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	stats := CompressionStats{
		Algorithm:    compressionType,
		OriginalSize: int64(len(data)),
		Checksum:     hash.Checksum(data),
	}

	start := time.Now()
	compressed, err := codec.Compress(data)
	if err != nil {
		return stats, fmt.Errorf("%s compress: %w", compressionType, err)
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := codec.Decompress(compressed)
	if err != nil {
		return stats, fmt.Errorf("%s decompress: %w", compressionType, err)
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()
	stats.RoundTrip = bytes.Equal(data, restored)

	return stats, nil
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or RLE)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionRLE:
		return NewRLECompressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrUnknownCodec, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionRLE:  NewRLECompressor(),
}

// BuiltinTypes lists the compression types served by GetCodec, RLE first.
var BuiltinTypes = []format.CompressionType{
	format.CompressionRLE,
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %s", errs.ErrUnknownCodec, compressionType)
}
