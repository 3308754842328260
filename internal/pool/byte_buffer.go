package pool

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/rle/errs"
)

const (
	// DefaultChunkSize is the growth increment used when no chunk size is configured.
	DefaultChunkSize = 4 * 1024 // 4KiB

	// HardMaxSize caps every buffer, including those created without a maxSize.
	HardMaxSize = min(1<<34, math.MaxInt) // 16GiB
)

// ByteBuffer is a growable byte buffer that grows in whole multiples of a fixed
// chunk size and can be trimmed to its exact length once writing is done.
//
// A zero maxSize leaves HardMaxSize as the only bound.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte

	chunkSize int
	maxSize   int
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
// The default size is also used as the growth chunk, and the buffer has no size limit.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	if defaultSize <= 0 {
		defaultSize = DefaultChunkSize
	}

	return &ByteBuffer{
		B:         make([]byte, 0, defaultSize),
		chunkSize: defaultSize,
	}
}

// NewChunkedByteBuffer creates a ByteBuffer with an initial capacity, a growth
// chunk size and an upper bound on the capacity.
//
// A non-positive initial size allocates one chunk. An initial size above maxSize is
// clamped to maxSize, so a generous size hint never fails on its own.
func NewChunkedByteBuffer(initialSize, chunkSize, maxSize int) (*ByteBuffer, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if maxSize < 0 {
		return nil, fmt.Errorf("%w: negative max size %d", errs.ErrMemoryAllocation, maxSize)
	}
	if initialSize <= 0 {
		initialSize = chunkSize
	}
	if maxSize > HardMaxSize {
		maxSize = HardMaxSize
	}
	if maxSize > 0 && initialSize > maxSize {
		initialSize = maxSize
	}

	return &ByteBuffer{
		B:         make([]byte, 0, initialSize),
		chunkSize: chunkSize,
		maxSize:   maxSize,
	}, nil
}

// Bytes() returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// ChunkSize returns the growth increment of the buffer.
func (bb *ByteBuffer) ChunkSize() int {
	return bb.chunkSize
}

// Reserve ensures the buffer can take n more bytes without reallocating.
//
// Capacity grows by the smallest whole number of chunks that covers the missing
// space. Growth copies the written bytes into the new allocation, so the buffer
// keeps its content on success and is left untouched on failure.
// Returns ErrMemoryAllocation if the new capacity would exceed the maximum size
// (HardMaxSize when none is set) or overflow int.
func (bb *ByteBuffer) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative reservation %d", errs.ErrMemoryAllocation, n)
	}

	curLen, curCap := len(bb.B), cap(bb.B)
	if curCap-curLen >= n {
		return nil
	}

	if n > math.MaxInt-curLen {
		return fmt.Errorf("%w: size overflow", errs.ErrMemoryAllocation)
	}
	limit := bb.limit()
	required := curLen + n
	if required > limit {
		return fmt.Errorf("%w: need %d bytes, limit is %d", errs.ErrMemoryAllocation, required, limit)
	}

	chunks := (required - curCap + bb.chunkSize - 1) / bb.chunkSize
	newCap := curCap
	if chunks > (math.MaxInt-curCap)/bb.chunkSize {
		newCap = required
	} else {
		newCap += chunks * bb.chunkSize
	}
	if newCap > limit {
		newCap = limit
	}

	newBuf := make([]byte, curLen, newCap)
	copy(newBuf, bb.B)
	bb.B = newBuf

	return nil
}

func (bb *ByteBuffer) limit() int {
	if bb.maxSize > 0 {
		return bb.maxSize
	}

	return HardMaxSize
}

// WriteByte appends c to the buffer, growing it by a chunk if needed.
func (bb *ByteBuffer) WriteByte(c byte) error {
	if err := bb.Reserve(1); err != nil {
		return err
	}
	bb.B = append(bb.B, c)

	return nil
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	if err := bb.Reserve(len(data)); err != nil {
		return 0, err
	}
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteRepeated appends n copies of c to the buffer.
func (bb *ByteBuffer) WriteRepeated(c byte, n uint64) error {
	if n > uint64(math.MaxInt) {
		return fmt.Errorf("%w: run of %d bytes", errs.ErrMemoryAllocation, n)
	}

	count := int(n)
	if err := bb.Reserve(count); err != nil {
		return err
	}

	start := len(bb.B)
	bb.B = bb.B[:start+count]
	run := bb.B[start:]
	if count == 0 {
		return nil
	}

	// fill by doubling copies
	run[0] = c
	for filled := 1; filled < count; filled *= 2 {
		copy(run[filled:], run[:filled])
	}

	return nil
}

// ShrinkToFit trims the capacity of the buffer to its length and returns the
// trimmed slice. The returned slice satisfies cap == len.
func (bb *ByteBuffer) ShrinkToFit() []byte {
	if cap(bb.B) == len(bb.B) {
		return bb.B
	}

	trimmed := make([]byte, len(bb.B))
	copy(trimmed, bb.B)
	bb.B = trimmed

	return bb.B
}

// ReadFrom reads from r until EOF.
//
// Unlike Reserve callers, ReadFrom does not know the final size, so each refill
// grows the capacity by the current length (at least one chunk) to keep reads of
// large inputs linear. Callers that know the size should Reserve it up front.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if len(bb.B) == cap(bb.B) {
			if err := bb.Reserve(max(bb.chunkSize, len(bb.B))); err != nil {
				// near the limit, fall back to a single chunk
				if err := bb.Reserve(bb.chunkSize); err != nil {
					return total, err
				}
			}
		}

		n, err := r.Read(bb.B[len(bb.B):cap(bb.B)])
		if n < 0 {
			return total, errors.New("pool: reader returned negative count")
		}
		bb.B = bb.B[:len(bb.B)+n]
		total += int64(n)

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}
