package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/countfit/endian"
	"github.com/arloliu/countfit/errs"
)

// MaxTextLength is the longest string a text column can hold.
const MaxTextLength = math.MaxUint32

// TextEncoder encodes strings with a uint32 length prefix.
type TextEncoder struct {
	buf    []byte
	engine endian.EndianEngine
	count  int
}

var _ ColumnEncoder[string] = (*TextEncoder)(nil)

// NewTextEncoder creates a text encoder using the given byte order.
func NewTextEncoder(engine endian.EndianEngine) *TextEncoder {
	return &TextEncoder{engine: engine}
}

func (e *TextEncoder) Write(s string) {
	e.buf = e.engine.AppendUint32(e.buf, uint32(len(s))) //nolint: gosec
	e.buf = append(e.buf, s...)
	e.count++
}

// WriteSlice sizes the buffer for the whole slice before copying.
func (e *TextEncoder) WriteSlice(values []string) {
	total := 0
	for _, s := range values {
		total += 4 + len(s)
	}
	if cap(e.buf)-len(e.buf) < total {
		grown := make([]byte, len(e.buf), len(e.buf)+total)
		copy(grown, e.buf)
		e.buf = grown
	}
	for _, s := range values {
		e.Write(s)
	}
}

func (e *TextEncoder) Bytes() []byte { return e.buf }
func (e *TextEncoder) Len() int      { return e.count }
func (e *TextEncoder) Size() int     { return len(e.buf) }

func (e *TextEncoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
}

// TextDecoder decodes length-prefixed text columns.
type TextDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnDecoder[string] = TextDecoder{}

// NewTextDecoder creates a text decoder using the given byte order.
func NewTextDecoder(engine endian.EndianEngine) TextDecoder {
	return TextDecoder{engine: engine}
}

func (d TextDecoder) Decode(data []byte, count int) ([]string, error) {
	// Every value takes at least its 4-byte prefix.
	out := make([]string, 0, min(count, len(data)/4))
	pos := 0
	for len(out) < count {
		s, n, ok := d.next(data[pos:])
		if !ok {
			return nil, fmt.Errorf("%w: text column truncated at value %d", errs.ErrInvalidSnapshot, len(out))
		}
		out = append(out, s)
		pos += n
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes in text column", errs.ErrInvalidSnapshot, len(data)-pos)
	}

	return out, nil
}

// next decodes one string from the front of data and reports the bytes consumed.
func (d TextDecoder) next(data []byte) (string, int, bool) {
	if len(data) < 4 {
		return "", 0, false
	}
	n := int(d.engine.Uint32(data))
	if n > len(data)-4 {
		return "", 0, false
	}

	return string(data[4 : 4+n]), 4 + n, true
}
