package pool

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/rle/errs"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
	assert.Equal(t, capacity, bb.ChunkSize())
}

func TestNewByteBuffer_NonPositiveSize(t *testing.T) {
	bb := NewByteBuffer(0)

	assert.Equal(t, DefaultChunkSize, bb.Cap())
	assert.Equal(t, DefaultChunkSize, bb.ChunkSize())
}

func TestNewChunkedByteBuffer(t *testing.T) {
	t.Run("defaults to one chunk", func(t *testing.T) {
		bb, err := NewChunkedByteBuffer(0, 64, 0)
		require.NoError(t, err)
		assert.Equal(t, 64, bb.Cap())
	})

	t.Run("uses size hint", func(t *testing.T) {
		bb, err := NewChunkedByteBuffer(500, 64, 0)
		require.NoError(t, err)
		assert.Equal(t, 500, bb.Cap())
	})

	t.Run("clamps size hint to max size", func(t *testing.T) {
		bb, err := NewChunkedByteBuffer(500, 64, 100)
		require.NoError(t, err)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("rejects negative max size", func(t *testing.T) {
		_, err := NewChunkedByteBuffer(10, 64, -1)
		require.ErrorIs(t, err, errs.ErrMemoryAllocation)
	})
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

// =============================================================================
// ByteBuffer Reserve Tests
// =============================================================================

func TestByteBuffer_Reserve_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(64)
	originalCap := cap(bb.B)

	require.NoError(t, bb.Reserve(10))
	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Reserve_GrowsByWholeChunks(t *testing.T) {
	bb, err := NewChunkedByteBuffer(16, 16, 0)
	require.NoError(t, err)
	_, err = bb.Write(make([]byte, 16))
	require.NoError(t, err)

	require.NoError(t, bb.Reserve(1))
	assert.Equal(t, 32, bb.Cap(), "one missing byte should add one chunk")

	require.NoError(t, bb.Reserve(40))
	assert.Equal(t, 64, bb.Cap(), "missing 24 bytes should add two chunks")
	assert.Equal(t, 16, bb.Len(), "length should not change")
}

func TestByteBuffer_Reserve_PreservesData(t *testing.T) {
	bb, err := NewChunkedByteBuffer(8, 8, 0)
	require.NoError(t, err)
	testData := []byte("important data that must be preserved")
	_, err = bb.Write(testData)
	require.NoError(t, err)

	require.NoError(t, bb.Reserve(100))

	assert.Equal(t, testData, bb.B, "data should be preserved after growth")
}

func TestByteBuffer_Reserve_MaxSize(t *testing.T) {
	bb, err := NewChunkedByteBuffer(8, 8, 20)
	require.NoError(t, err)
	_, err = bb.Write([]byte("0123456789"))
	require.NoError(t, err)

	require.NoError(t, bb.Reserve(10), "growing to exactly the limit is allowed")
	assert.Equal(t, 20, bb.Cap(), "capacity should be clamped to the limit")

	err = bb.Reserve(11)
	require.ErrorIs(t, err, errs.ErrMemoryAllocation)
	assert.Equal(t, []byte("0123456789"), bb.B, "failed growth must keep the content")
}

func TestByteBuffer_Reserve_HardMaxSize(t *testing.T) {
	bb, err := NewChunkedByteBuffer(0, 16, 0)
	require.NoError(t, err)

	over := HardMaxSize
	over++
	require.ErrorIs(t, bb.Reserve(over), errs.ErrMemoryAllocation)
	require.ErrorIs(t, bb.WriteRepeated('a', math.MaxInt64), errs.ErrMemoryAllocation)
	assert.Equal(t, 0, bb.Len())

	bb, err = NewChunkedByteBuffer(0, 16, math.MaxInt)
	require.NoError(t, err)
	require.ErrorIs(t, bb.WriteRepeated('a', math.MaxInt64), errs.ErrMemoryAllocation)
}

func TestByteBuffer_Reserve_Negative(t *testing.T) {
	bb := NewByteBuffer(8)
	require.ErrorIs(t, bb.Reserve(-1), errs.ErrMemoryAllocation)
}

// =============================================================================
// ByteBuffer Write Tests
// =============================================================================

func TestByteBuffer_Write_Multiple(t *testing.T) {
	bb := NewByteBuffer(4)

	n1, err1 := bb.Write([]byte("hello"))
	require.NoError(t, err1)
	assert.Equal(t, 5, n1)

	n2, err2 := bb.Write([]byte(" world"))
	require.NoError(t, err2)
	assert.Equal(t, 6, n2)

	assert.Equal(t, []byte("hello world"), bb.B)
	assert.Equal(t, 11, bb.Len())
}

func TestByteBuffer_WriteByte(t *testing.T) {
	bb := NewByteBuffer(2)
	for _, c := range []byte("abcde") {
		require.NoError(t, bb.WriteByte(c))
	}

	assert.Equal(t, []byte("abcde"), bb.Bytes())
	assert.Equal(t, 6, bb.Cap(), "capacity grows in chunks of two")
}

func TestByteBuffer_WriteByte_Limit(t *testing.T) {
	bb, err := NewChunkedByteBuffer(2, 2, 2)
	require.NoError(t, err)
	require.NoError(t, bb.WriteByte('a'))
	require.NoError(t, bb.WriteByte('b'))
	require.ErrorIs(t, bb.WriteByte('c'), errs.ErrMemoryAllocation)
}

func TestByteBuffer_WriteRepeated(t *testing.T) {
	tests := []struct {
		name  string
		count uint64
	}{
		{"zero", 0},
		{"one", 1},
		{"within chunk", 7},
		{"exact chunk", 16},
		{"several chunks", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb, err := NewChunkedByteBuffer(0, 16, 0)
			require.NoError(t, err)
			require.NoError(t, bb.WriteByte('>'))

			require.NoError(t, bb.WriteRepeated('z', tt.count))

			want := ">" + strings.Repeat("z", int(tt.count))
			assert.Equal(t, want, string(bb.Bytes()))
			assert.Zero(t, bb.Cap()%16, "capacity stays a multiple of the chunk size")
		})
	}
}

func TestByteBuffer_WriteRepeated_TooLarge(t *testing.T) {
	bb, err := NewChunkedByteBuffer(0, 16, 1024)
	require.NoError(t, err)

	require.ErrorIs(t, bb.WriteRepeated('a', 2048), errs.ErrMemoryAllocation)
	require.ErrorIs(t, bb.WriteRepeated('a', ^uint64(0)), errs.ErrMemoryAllocation)
	assert.Equal(t, 0, bb.Len())
}

func TestByteBuffer_ShrinkToFit(t *testing.T) {
	bb, err := NewChunkedByteBuffer(0, 64, 0)
	require.NoError(t, err)
	_, err = bb.Write([]byte("abc"))
	require.NoError(t, err)

	out := bb.ShrinkToFit()

	assert.Equal(t, []byte("abc"), out)
	assert.Equal(t, len(out), cap(out))
	assert.Equal(t, 3, bb.Cap())

	// already trimmed buffers are returned as-is
	again := bb.ShrinkToFit()
	assert.True(t, &out[0] == &again[0])
}

// =============================================================================
// ByteBuffer I/O Tests
// =============================================================================

func TestByteBuffer_ReadFrom(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 100)
	bb := NewByteBuffer(64)

	n, err := bb.ReadFrom(bytes.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, bb.Bytes())
}

func TestByteBuffer_ReadFrom_LargeInput(t *testing.T) {
	data := bytes.Repeat([]byte("run-length "), 1<<20) // 11MiB
	r := bytes.NewReader(data)
	var bb *ByteBuffer

	allocs := testing.AllocsPerRun(1, func() {
		bb = NewByteBuffer(FileBufferDefaultSize)
		_, _ = r.Seek(0, io.SeekStart)
		_, err := bb.ReadFrom(r)
		require.NoError(t, err)
	})

	assert.Equal(t, data, bb.Bytes())
	assert.Less(t, allocs, 32.0, "capacity must grow geometrically, not one chunk per refill")
}

func TestByteBuffer_ReadFrom_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(64)

	_, err := bb.ReadFrom(&errorReader{err: io.ErrUnexpectedEOF})

	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, []byte("test data")...)

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, []byte("test")...)

	n, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})

	assert.Equal(t, io.ErrShortWrite, err)
	assert.Equal(t, int64(0), n)
}

type errorWriter struct {
	err error
}

func (w *errorWriter) Write([]byte) (int, error) {
	return 0, w.err
}

type errorReader struct {
	err error
}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, r.err
}

func BenchmarkByteBuffer_ReadFrom(b *testing.B) {
	data := bytes.Repeat([]byte("aaaaaaaabbbbbbbb"), 1<<20) // 16MiB
	r := bytes.NewReader(data)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for iter := 0; iter < b.N; iter++ {
		_, _ = r.Seek(0, io.SeekStart)
		bb := NewByteBuffer(FileBufferDefaultSize)
		if _, err := bb.ReadFrom(r); err != nil {
			b.Fatal(err)
		}
	}
}
