package dataset

import (
	"testing"

	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/format"
	"github.com/arloliu/countfit/section"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestSnapshot_RoundTrip(t *testing.T) {
	want := visitsTable(t)

	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Encode(want, WithCompression(ct))
			require.NoError(t, err)

			header, err := section.ParseHeader(data)
			require.NoError(t, err)
			require.Equal(t, ct, header.Compression)
			require.Equal(t, uint32(3), header.ColumnCount)
			require.Equal(t, uint32(6), header.RowCount)

			got, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, want.Rows(), got.Rows())

			diff := cmp.Diff(want.Columns(), got.Columns(), cmpopts.EquateNaNs(), cmpopts.EquateEmpty())
			require.Empty(t, diff)
		})
	}
}

func TestSnapshot_EmptyTable(t *testing.T) {
	data, err := Encode(NewTable(), WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.Len(t, data, section.HeaderSize)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Zero(t, got.Rows())
	require.Empty(t, got.Names())
}

func TestEncodeWithStats(t *testing.T) {
	tbl := NewTable()
	values := make([]float64, 4096)
	for i := range values {
		values[i] = float64(i % 7)
	}
	require.NoError(t, tbl.AddNumeric("y", values))

	_, stats, err := EncodeWithStats(tbl, WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	require.Equal(t, int64(8*4096), stats.OriginalSize)
	require.Less(t, stats.CompressedSize, stats.OriginalSize)
}

func TestWithCompression_Unknown(t *testing.T) {
	_, err := Encode(visitsTable(t), WithCompression(format.CompressionType(0x7F)))
	require.Error(t, err)
}

func TestDecode_Corruption(t *testing.T) {
	data, err := Encode(visitsTable(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("Flipped payload byte", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xFF
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("Flipped name byte", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[section.HeaderSize+3*section.IndexEntrySize+2] ^= 0x01
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decode(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("Short header", func(t *testing.T) {
		_, err := Decode(data[:12])
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("Bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'y'
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})
}

func BenchmarkEncode(b *testing.B) {
	tbl := NewTable()
	values := make([]float64, 10000)
	for i := range values {
		values[i] = float64(i % 13)
	}
	if err := tbl.AddNumeric("y", values); err != nil {
		b.Fatal(err)
	}

	for _, ct := range allCompressions {
		b.Run(ct.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Encode(tbl, WithCompression(ct)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
