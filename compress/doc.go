// Package compress provides whole-payload codecs behind a common interface.
//
// The escaped-digit run-length codec (RLE) is the codec of this module; the
// general purpose codecs are kept next to it so a payload can be measured against
// them with the same API.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **RLE** (format.CompressionRLE)
//
//	codec := compress.NewRLECompressor(encoding.WithChunkSize(8192))
//	encoded, _ := codec.Compress([]byte("aaabbbccc"))  // "a3b3c3"
//	original, _ := codec.Decompress(encoded)
//
// Characteristics:
//   - Output is text-like and has no header
//   - Effective on long runs; plain prose usually doubles in size
//   - Rejects nil and empty input like the underlying transform
//
// **NoOp** (format.CompressionNone) returns data unchanged.
//
// **Zstd** (format.CompressionZstd) uses klauspost/compress/zstd with pooled
// encoders and decoders, or valyala/gozstd when built with the gozstd tag.
//
// **S2** (format.CompressionS2) uses klauspost/compress/s2.
//
// **LZ4** (format.CompressionLZ4) uses pierrec/lz4/v4 block mode with an adaptive
// decompression buffer bounded at 128MB.
//
// Every decompressor refuses to produce more than encoding.DefaultMaxSize bytes
// and reports errs.ErrMemoryAllocation instead.
//
// # Measuring
//
// Measure runs a full compress/decompress cycle and reports sizes, timings, the
// xxHash64 checksum of the input and whether the round trip was exact:
//
//	for _, typ := range compress.BuiltinTypes {
//	    stats, err := compress.Measure(typ, data)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%s: %.2f\n", typ, stats.CompressionRatio())
//	}
//
// # Thread Safety
//
// All built-in codecs are stateless values (pooled internals are synchronized)
// and are safe for concurrent use.
package compress
