package format

import "strings"

type (
	CompressionType uint8
	Direction       uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionRLE  CompressionType = 0x5 // CompressionRLE represents escaped-digit run-length encoding.

	DirectionCompress   Direction = 0x1 // DirectionCompress turns a text file into an encoded file.
	DirectionDecompress Direction = 0x2 // DirectionDecompress turns an encoded file back into text.
)

// File extensions (without the leading dot) of each side of the codec.
const (
	ExtText    = "txt"
	ExtEncoded = "rle"
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionRLE:
		return "RLE"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive codec name to its CompressionType.
// It returns false when the name is unknown.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "rle":
		return CompressionRLE, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionCompress:
		return "compress"
	case DirectionDecompress:
		return "decompress"
	default:
		return "unknown"
	}
}

// InputExt returns the extension an input file must carry for the direction.
func (d Direction) InputExt() string {
	if d == DirectionDecompress {
		return ExtEncoded
	}

	return ExtText
}

// OutputExt returns the extension given to the output file of the direction.
func (d Direction) OutputExt() string {
	if d == DirectionDecompress {
		return ExtText
	}

	return ExtEncoded
}
