package section

import (
	"fmt"

	"github.com/arloliu/countfit/endian"
	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/format"
)

// IndexEntry describes one column in the snapshot index. It is a fixed size
// of 16 bytes.
type IndexEntry struct {
	// ColumnID is the xxHash64 of the column name.
	//
	// Offset: 0, Size: 8 bytes
	ColumnID uint64
	// Kind is the column kind.
	//
	// Offset: 8, Size: 1 byte. Bytes 9-11 are reserved and written as zero.
	Kind format.ColumnKind
	// Length is the byte length of the column's uncompressed payload.
	//
	// Offset: 12, Size: 4 bytes
	Length uint32
}

// Bytes returns the 16-byte encoding of the entry.
func (e *IndexEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [IndexEntrySize]byte
	engine.PutUint64(b[0:8], e.ColumnID)
	b[8] = uint8(e.Kind)
	engine.PutUint32(b[12:16], e.Length)

	return b[:]
}

// ParseIndexEntry parses an entry from exactly IndexEntrySize bytes.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) != IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: index entry is %d bytes", errs.ErrInvalidSnapshot, len(data))
	}

	e := IndexEntry{
		ColumnID: engine.Uint64(data[0:8]),
		Kind:     format.ColumnKind(data[8]),
		Length:   engine.Uint32(data[12:16]),
	}
	if e.Kind != format.KindNumeric && e.Kind != format.KindText {
		return IndexEntry{}, fmt.Errorf("%w: unknown column kind 0x%02X", errs.ErrInvalidSnapshot, data[8])
	}
	if e.Kind == format.KindNumeric && e.Length%8 != 0 {
		return IndexEntry{}, fmt.Errorf("%w: numeric column length %d is not a multiple of 8", errs.ErrInvalidSnapshot, e.Length)
	}

	return e, nil
}
