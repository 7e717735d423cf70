package section

import "math"

const (
	// MagicSnapshot identifies a countfit dataset snapshot.
	MagicSnapshot uint16 = 0xC0F1
	// Version is the current snapshot layout version.
	Version uint8 = 1
)

const (
	HeaderSize        = 32             // fixed header size in bytes
	IndexEntrySize    = 16             // fixed index entry size in bytes
	IndexOffsetOffset = HeaderSize     // byte offset where the index section starts
	MaxNameLength     = math.MaxUint16 // longest column name, in bytes
	MaxSectionLength  = math.MaxUint32 // largest section or payload, in bytes

	maxColumns = (math.MaxUint32 - HeaderSize) / IndexEntrySize
)
