package compress

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/countfit/endian"
	"github.com/arloliu/countfit/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// countColumn lays out small integer counts as float64 values, the shape of a
// typical snapshot payload.
func countColumn(n int) []byte {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		buf = engine.AppendUint64(buf, math.Float64bits(float64(i%7)))
	}

	return buf
}

func TestCodecRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"counts":  countColumn(2000),
		"tiny":    {0x01, 0x02, 0x03},
		"pattern": bytes.Repeat([]byte("region=Northeast;"), 100),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, out)
			})
		}
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestCodecCorruptInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22, 0x33}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestLZ4StoresIncompressibleInput(t *testing.T) {
	codec := NewLZ4Compressor()
	data := []byte{0x42}

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, []byte{lz4Stored, 0x42}, compressed)

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestGetCodecUnknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestCompressWithStats(t *testing.T) {
	data := countColumn(4096)

	out, stats, err := CompressWithStats(format.CompressionZstd, data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(out)), stats.CompressedSize)
	require.Less(t, stats.Ratio(), 0.5)
	require.Greater(t, stats.SpaceSavings(), 50.0)

	require.Zero(t, Stats{}.Ratio())
	require.Zero(t, Stats{}.SpaceSavings())

	_, _, err = CompressWithStats(format.CompressionType(0), data)
	require.Error(t, err)
}

func BenchmarkCodecs(b *testing.B) {
	data := countColumn(8192)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String()+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})

		compressed, _ := codec.Compress(data)
		b.Run(ct.String()+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
