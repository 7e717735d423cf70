package dataset

import (
	"fmt"
	"hash/crc32"
	"math"

	"github.com/arloliu/countfit/compress"
	"github.com/arloliu/countfit/encoding"
	"github.com/arloliu/countfit/endian"
	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/format"
	"github.com/arloliu/countfit/internal/hash"
	"github.com/arloliu/countfit/internal/options"
	"github.com/arloliu/countfit/section"
)

// EncodeConfig holds the snapshot encoder settings.
type EncodeConfig struct {
	Compression format.CompressionType
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*EncodeConfig]

// WithCompression selects the payload codec. The default is zstd.
func WithCompression(ct format.CompressionType) EncodeOption {
	return options.New(func(cfg *EncodeConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		cfg.Compression = ct

		return nil
	})
}

// Encode serializes a table into a snapshot.
func Encode(t *Table, opts ...EncodeOption) ([]byte, error) {
	data, _, err := EncodeWithStats(t, opts...)
	return data, err
}

// EncodeWithStats serializes a table into a snapshot and reports the payload
// compression statistics.
func EncodeWithStats(t *Table, opts ...EncodeOption) ([]byte, compress.Stats, error) {
	cfg := &EncodeConfig{Compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, compress.Stats{}, err
	}

	engine := endian.GetLittleEndianEngine()
	columns := t.Columns()
	if uint64(t.Rows()) > math.MaxUint32 {
		return nil, compress.Stats{}, fmt.Errorf("%w: %d rows", errs.ErrInvalidSnapshot, t.Rows())
	}

	seen := make(map[uint64]string, len(columns))
	index := make([]byte, 0, len(columns)*section.IndexEntrySize)
	names := make([]byte, 0, 16*len(columns))
	payload := make([]byte, 0, 8*t.Rows()*len(columns))
	numeric := encoding.NewNumericEncoder(engine)
	text := encoding.NewTextEncoder(engine)

	for _, c := range columns {
		id := hash.ColumnID(c.Name)
		if prev, ok := seen[id]; ok {
			return nil, compress.Stats{}, fmt.Errorf("%w: %q and %q share a column id", errs.ErrDuplicateColumn, prev, c.Name)
		}
		seen[id] = c.Name

		if len(c.Name) > section.MaxNameLength {
			return nil, compress.Stats{}, fmt.Errorf("%w: column name of %d bytes", errs.ErrInvalidSnapshot, len(c.Name))
		}
		names = engine.AppendUint16(names, uint16(len(c.Name))) //nolint: gosec
		names = append(names, c.Name...)

		var chunk []byte
		if c.Kind == format.KindText {
			text.Reset()
			text.WriteSlice(c.Strings)
			chunk = text.Bytes()
		} else {
			numeric.Reset()
			numeric.WriteSlice(c.Floats)
			chunk = numeric.Bytes()
		}
		length := len(chunk)
		payload = append(payload, chunk...)
		if uint64(length) > section.MaxSectionLength {
			return nil, compress.Stats{}, fmt.Errorf("%w: column %q payload of %d bytes", errs.ErrInvalidSnapshot, c.Name, length)
		}

		entry := section.IndexEntry{ColumnID: id, Kind: c.Kind, Length: uint32(length)} //nolint: gosec
		index = append(index, entry.Bytes(engine)...)
	}

	compressed, stats, err := compress.CompressWithStats(cfg.Compression, payload)
	if err != nil {
		return nil, compress.Stats{}, fmt.Errorf("compress snapshot payload: %w", err)
	}

	total := section.HeaderSize + len(index) + len(names) + len(compressed)
	if uint64(len(payload)) > section.MaxSectionLength || uint64(total) > section.MaxSectionLength {
		return nil, compress.Stats{}, fmt.Errorf("%w: snapshot of %d bytes is too large", errs.ErrInvalidSnapshot, total)
	}

	header := section.NewHeader(cfg.Compression)
	header.ColumnCount = uint32(len(columns))                      //nolint: gosec
	header.RowCount = uint32(t.Rows())                             //nolint: gosec
	header.NamesOffset = header.IndexOffset + uint32(len(index))   //nolint: gosec
	header.PayloadOffset = header.NamesOffset + uint32(len(names)) //nolint: gosec
	header.PayloadLength = uint32(len(payload))                    //nolint: gosec

	out := make([]byte, section.HeaderSize, total)
	out = append(out, index...)
	out = append(out, names...)
	out = append(out, compressed...)

	header.Checksum = crc32.ChecksumIEEE(out[section.HeaderSize:])
	copy(out[:section.HeaderSize], header.Bytes())

	return out, stats, nil
}

// Decode parses a snapshot produced by Encode.
//
// The checksum is verified before anything else is interpreted, so corruption
// is reported as errs.ErrChecksumMismatch. Structural problems in an intact
// snapshot are reported as errs.ErrInvalidSnapshot.
func Decode(data []byte) (*Table, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if sum := crc32.ChecksumIEEE(data[section.HeaderSize:]); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got 0x%08X, header says 0x%08X", errs.ErrChecksumMismatch, sum, header.Checksum)
	}
	if int(header.PayloadOffset) > len(data) {
		return nil, fmt.Errorf("%w: payload offset %d beyond %d bytes", errs.ErrInvalidSnapshot, header.PayloadOffset, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	rows := int(header.RowCount)
	count := int(header.ColumnCount)

	entries := make([]section.IndexEntry, count)
	var rawLength uint64
	for i := range entries {
		off := int(header.IndexOffset) + i*section.IndexEntrySize
		entries[i], err = section.ParseIndexEntry(data[off:off+section.IndexEntrySize], engine)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		rawLength += uint64(entries[i].Length)
	}
	if rawLength != uint64(header.PayloadLength) {
		return nil, fmt.Errorf("%w: index covers %d payload bytes, header says %d", errs.ErrInvalidSnapshot, rawLength, header.PayloadLength)
	}

	names, err := decodeNames(data[header.NamesOffset:header.PayloadOffset], entries, engine)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	payload, err := codec.Decompress(data[header.PayloadOffset:])
	if err != nil {
		return nil, fmt.Errorf("%w: decompress payload: %w", errs.ErrInvalidSnapshot, err)
	}
	if len(payload) != int(header.PayloadLength) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidSnapshot, len(payload), header.PayloadLength)
	}

	t := NewTable()
	numeric := encoding.NewNumericDecoder(engine)
	text := encoding.NewTextDecoder(engine)
	offset := 0
	for i, entry := range entries {
		chunk := payload[offset : offset+int(entry.Length)]
		offset += int(entry.Length)

		if err := decodeColumn(t, names[i], entry.Kind, chunk, rows, numeric, text); err != nil {
			return nil, err
		}
	}
	// A table without columns keeps the encoded row count.
	if count == 0 {
		t.rows = rows
	}

	return t, nil
}

func decodeColumn(t *Table, name string, kind format.ColumnKind, chunk []byte, rows int,
	numeric encoding.NumericDecoder, text encoding.TextDecoder,
) error {
	if kind == format.KindText {
		values, err := text.Decode(chunk, rows)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}

		return t.AddText(name, values)
	}

	values, err := numeric.Decode(chunk, rows)
	if err != nil {
		return fmt.Errorf("column %q: %w", name, err)
	}

	return t.AddNumeric(name, values)
}

func decodeNames(data []byte, entries []section.IndexEntry, engine endian.EndianEngine) ([]string, error) {
	names := make([]string, len(entries))
	seen := make(map[uint64]struct{}, len(entries))
	pos := 0
	for i, entry := range entries {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: names section truncated", errs.ErrInvalidSnapshot)
		}
		n := int(engine.Uint16(data[pos:]))
		pos += 2
		if pos+n > len(data) {
			return nil, fmt.Errorf("%w: names section truncated", errs.ErrInvalidSnapshot)
		}
		names[i] = string(data[pos : pos+n])
		pos += n

		if hash.ColumnID(names[i]) != entry.ColumnID {
			return nil, fmt.Errorf("%w: column id does not match name %q", errs.ErrInvalidSnapshot, names[i])
		}
		if _, ok := seen[entry.ColumnID]; ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, names[i])
		}
		seen[entry.ColumnID] = struct{}{}
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes in names section", errs.ErrInvalidSnapshot, len(data)-pos)
	}

	return names, nil
}
