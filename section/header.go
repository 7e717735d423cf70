package section

import (
	"fmt"

	"github.com/arloliu/countfit/endian"
	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/format"
)

// Header is the fixed-size header at the start of a snapshot.
type Header struct {
	Magic         uint16                 // byte offset 0-1
	Version       uint8                  // byte offset 2
	Compression   format.CompressionType // byte offset 3
	ColumnCount   uint32                 // byte offset 4-7
	RowCount      uint32                 // byte offset 8-11
	IndexOffset   uint32                 // byte offset 12-15
	NamesOffset   uint32                 // byte offset 16-19
	PayloadOffset uint32                 // byte offset 20-23
	// PayloadLength is the uncompressed payload size.
	PayloadLength uint32 // byte offset 24-27
	// Checksum is the CRC32 (IEEE) of all bytes after the header.
	Checksum uint32 // byte offset 28-31
}

// NewHeader creates a header for the given codec. Counts, offsets and the
// checksum are filled in by the encoder.
func NewHeader(compression format.CompressionType) *Header {
	return &Header{
		Magic:       MagicSnapshot,
		Version:     Version,
		Compression: compression,
		IndexOffset: IndexOffsetOffset,
	}
}

// Bytes serializes the header into a 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], h.Magic)
	b[2] = h.Version
	b[3] = uint8(h.Compression)
	engine.PutUint32(b[4:8], h.ColumnCount)
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.NamesOffset)
	engine.PutUint32(b[20:24], h.PayloadOffset)
	engine.PutUint32(b[24:28], h.PayloadLength)
	engine.PutUint32(b[28:32], h.Checksum)

	return b
}

// Parse parses the header from exactly HeaderSize bytes and validates the
// magic number, version and codec.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrInvalidSnapshot, len(data), HeaderSize)
	}

	engine := endian.GetLittleEndianEngine()
	h.Magic = engine.Uint16(data[0:2])
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.ColumnCount = engine.Uint32(data[4:8])
	h.RowCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.NamesOffset = engine.Uint32(data[16:20])
	h.PayloadOffset = engine.Uint32(data[20:24])
	h.PayloadLength = engine.Uint32(data[24:28])
	h.Checksum = engine.Uint32(data[28:32])

	return h.Validate()
}

// Validate checks the fields that do not depend on the rest of the snapshot.
func (h *Header) Validate() error {
	if h.Magic != MagicSnapshot {
		return fmt.Errorf("%w: bad magic 0x%04X", errs.ErrInvalidSnapshot, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, h.Version)
	}
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: unknown compression 0x%02X", errs.ErrInvalidSnapshot, uint8(h.Compression))
	}
	if h.ColumnCount > maxColumns {
		return fmt.Errorf("%w: %d columns", errs.ErrInvalidSnapshot, h.ColumnCount)
	}
	if h.IndexOffset != IndexOffsetOffset ||
		h.NamesOffset != h.IndexOffset+h.ColumnCount*IndexEntrySize ||
		h.PayloadOffset < h.NamesOffset {
		return fmt.Errorf("%w: inconsistent section offsets", errs.ErrInvalidSnapshot)
	}

	return nil
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidSnapshot, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// HasMagic reports whether data starts with the snapshot magic number.
func HasMagic(data []byte) bool {
	if len(data) < 2 {
		return false
	}

	return endian.GetLittleEndianEngine().Uint16(data[0:2]) == MagicSnapshot
}
