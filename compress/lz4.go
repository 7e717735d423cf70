package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool keeps lz4.Compressor hash tables warm between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// maxLZ4Output bounds the decompression buffer growth.
const maxLZ4Output = 256 * 1024 * 1024

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Block markers written as the first byte of every LZ4 payload.
const (
	lz4Stored byte = 0x00 // input was incompressible and is stored verbatim
	lz4Block  byte = 0x01 // an LZ4 block follows
)

// Compress encodes data as one LZ4 block prefixed with a marker byte.
//
// LZ4 writes nothing for incompressible input (tiny tables hit this), in which
// case the input is stored verbatim behind the lz4Stored marker.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		stored := make([]byte, 1+len(data))
		stored[0] = lz4Stored
		copy(stored[1:], data)

		return stored, nil
	}
	dst[0] = lz4Block

	return dst[:1+n], nil
}

// Decompress decodes one marked LZ4 payload. The original size is not stored
// in the block, so the buffer starts at 4x the input and doubles on
// short-buffer errors up to maxLZ4Output.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4Stored:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])

		return out, nil
	case lz4Block:
		data = data[1:]
	default:
		return nil, errors.New("lz4: unknown block marker")
	}

	for size := max(len(data)*4, 64); size <= maxLZ4Output; size *= 2 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
