package encoding

import (
	"fmt"

	"github.com/arloliu/rle/internal/options"
	"github.com/arloliu/rle/internal/pool"
)

const (
	// DefaultChunkSize is the default output buffer growth increment.
	DefaultChunkSize = pool.DefaultChunkSize

	// DefaultMaxSize is the default upper bound of an output buffer (1GiB).
	DefaultMaxSize = 1 << 30

	// MaxCountDigits is the maximum number of decimal digits of a run length.
	// It matches the width of math.MaxUint64.
	MaxCountDigits = 20

	// maxEmission is the worst case size of one token: a two-byte escape pair
	// followed by the longest run length.
	maxEmission = 2 + MaxCountDigits
)

// RLEConfig holds the buffer settings shared by RLEEncoder and RLEDecoder.
type RLEConfig struct {
	// ChunkSize is the increment by which the output buffer grows.
	ChunkSize int
	// SizeHint is the initial output capacity. Zero allocates one chunk.
	SizeHint int
	// MaxSize bounds the output capacity. It is never above pool.HardMaxSize.
	MaxSize int
}

// RLEOption configures an RLEEncoder or RLEDecoder.
type RLEOption = options.Option[*RLEConfig]

func defaultRLEConfig() *RLEConfig {
	return &RLEConfig{
		ChunkSize: DefaultChunkSize,
		MaxSize:   DefaultMaxSize,
	}
}

func newRLEConfig(opts ...RLEOption) (*RLEConfig, error) {
	cfg := defaultRLEConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newBuffer allocates the output buffer of one transform call.
func (c *RLEConfig) newBuffer() (*pool.ByteBuffer, error) {
	return pool.NewChunkedByteBuffer(c.SizeHint, c.ChunkSize, c.MaxSize)
}

// WithChunkSize sets the output buffer growth increment in bytes.
func WithChunkSize(size int) RLEOption {
	return options.New(func(c *RLEConfig) error {
		if size <= 0 {
			return fmt.Errorf("invalid chunk size: %d", size)
		}
		c.ChunkSize = size

		return nil
	})
}

// WithSizeHint sets the initial output buffer capacity in bytes.
//
// The hint only saves reallocations; the output is trimmed to its exact length
// regardless of the hint.
func WithSizeHint(size int) RLEOption {
	return options.New(func(c *RLEConfig) error {
		if size < 0 {
			return fmt.Errorf("invalid size hint: %d", size)
		}
		c.SizeHint = size

		return nil
	})
}

// WithMaxSize bounds the output buffer capacity in bytes. The size must be
// positive; values above pool.HardMaxSize are lowered to it.
//
// A transform whose output would exceed the bound fails with errs.ErrMemoryAllocation.
func WithMaxSize(size int) RLEOption {
	return options.New(func(c *RLEConfig) error {
		if size <= 0 {
			return fmt.Errorf("invalid max size: %d", size)
		}
		c.MaxSize = min(size, pool.HardMaxSize)

		return nil
	})
}
