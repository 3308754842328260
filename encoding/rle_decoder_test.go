package encoding

import (
	"bytes"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rle/errs"
)

func TestDecode_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"distinct runs", "a3b3c3", "aaabbbccc"},
		{"digit run", `\53`, "555"},
		{"newline run", `\n2`, "\n\n"},
		{"single byte", "x1", "x"},
		{"escaped backslash", `\\3`, `\\\`},
		{"escaped tab", `\t3`, "\t\t\t"},
		{"unknown marker is backslash", `\q2`, `\\`},
		{"literal digit symbol", "55", "55555"},
		{"multi digit count", "a12", strings.Repeat("a", 12)},
		{"leading zero count", "b007", strings.Repeat("b", 7)},
		{"literal newline symbol", "\n2", "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
			require.Equal(t, len(got), cap(got))
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"symbol without count", "a"},
		{"second symbol without count", "a3b"},
		{"count missing between symbols", "ab3"},
		{"dangling escape", `a2\`},
		{"escape without count", `\n`},
		{"lone digit", "5"},
		{"zero count", "a0"},
		{"too many digits", "a" + strings.Repeat("1", MaxCountDigits+1)},
		{"count overflows uint64", "a99999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decode([]byte(tt.input))
			require.ErrorIs(t, err, errs.ErrMalformedEncoding)
			require.Nil(t, out)
		})
	}
}

func TestDecode_ErrorOffset(t *testing.T) {
	_, err := Decode([]byte("a3b2c"))
	require.ErrorIs(t, err, errs.ErrMalformedEncoding)
	require.Contains(t, err.Error(), "offset 4")
}

func TestDecode_Errors(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		out, err := Decode(nil)
		require.ErrorIs(t, err, errs.ErrNullInput)
		require.Nil(t, out)
	})

	t.Run("zero-length input", func(t *testing.T) {
		out, err := Decode([]byte{})
		require.ErrorIs(t, err, errs.ErrInvalidLength)
		require.Nil(t, out)
	})

	t.Run("output above max size", func(t *testing.T) {
		out, err := Decode([]byte("a2000"), WithMaxSize(1000))
		require.ErrorIs(t, err, errs.ErrMemoryAllocation)
		require.Nil(t, out)
	})

	t.Run("zero max size is rejected", func(t *testing.T) {
		out, err := Decode([]byte("a9223372036854775807"), WithMaxSize(0))
		require.Error(t, err)
		require.Nil(t, out)
	})

	t.Run("huge count under the largest max size", func(t *testing.T) {
		out, err := Decode([]byte("a9223372036854775807"), WithMaxSize(math.MaxInt))
		require.ErrorIs(t, err, errs.ErrMemoryAllocation)
		require.Nil(t, out)
	})

	t.Run("maximum count exceeds default limit", func(t *testing.T) {
		out, err := Decode([]byte("a18446744073709551615"))
		require.ErrorIs(t, err, errs.ErrMemoryAllocation)
		require.Nil(t, out)
	})
}

func TestDecode_GrowthAcrossChunks(t *testing.T) {
	var encoded strings.Builder
	var want strings.Builder
	for i := 0; i < 300; i++ {
		c := byte('A' + i%26)
		n := 1 + i%37
		encoded.WriteByte(c)
		encoded.WriteString(strconv.Itoa(n))
		want.WriteString(strings.Repeat(string(c), n))
	}

	for _, chunk := range []int{1, 7, 64, 4096} {
		t.Run(strconv.Itoa(chunk), func(t *testing.T) {
			got, err := Decode([]byte(encoded.String()), WithChunkSize(chunk))
			require.NoError(t, err)
			require.Equal(t, want.String(), string(got))
			require.Equal(t, len(got), cap(got))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"text", "The ancient oak tree stood as a silent sentinel at the edge of the meadow.\n"},
		{"runs", "WWWWWWWWWWWWBWWWWWWWWWWWWBBBWWWWWWWWWWWWWWWWWWWWWWWWBWWWWWWWWWWWWWW"},
		{"digits", "2024-01-01 00:00:00 value=1000000\n"},
		{"escapes", "path\\to\\file\ttab\n\n\n\\n literal"},
		{"single", "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode([]byte(tt.input))
			require.NoError(t, err)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, tt.input, string(decoded))
		})
	}
}

func TestRoundTrip_RandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		size := 1 + rng.Intn(2048)
		input := make([]byte, 0, size)
		for len(input) < size {
			// mix single bytes and runs drawn from the full byte range
			c := byte(rng.Intn(256))
			run := 1 + rng.Intn(30)
			for j := 0; j < run && len(input) < size; j++ {
				input = append(input, c)
			}
		}

		encoded, err := Encode(input, WithChunkSize(64))
		require.NoError(t, err)

		decoded, err := Decode(encoded, WithChunkSize(64))
		require.NoError(t, err)
		require.True(t, bytes.Equal(input, decoded), "round trip %d failed", i)
	}
}

func TestRoundTrip_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaabc\n0000000000\\\\"), 10000)

	encoded, err := Encode(input, WithChunkSize(128))
	require.NoError(t, err)
	require.Equal(t, len(encoded), cap(encoded))

	decoded, err := Decode(encoded, WithChunkSize(128))
	require.NoError(t, err)
	require.Equal(t, len(input), len(decoded))
	require.Equal(t, input, decoded)
}

func BenchmarkRLEDecoder_Decode(b *testing.B) {
	input := bytes.Repeat([]byte("aaaaaaaaaabbbbbbbbbb\n"), 4096)
	encoded, err := Encode(input)
	if err != nil {
		b.Fatal(err)
	}

	dec, err := NewRLEDecoder(WithSizeHint(len(input)))
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()

	for iter := 0; iter < b.N; iter++ {
		if _, err := dec.Decode(encoded); err != nil {
			b.Fatal(err)
		}
	}
}
