package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/countfit/endian"
	"github.com/arloliu/countfit/errs"
)

// NumericEncoder encodes float64 values as raw 8-byte words.
type NumericEncoder struct {
	buf    []byte
	engine endian.EndianEngine
	count  int
}

var _ ColumnEncoder[float64] = (*NumericEncoder)(nil)

// NewNumericEncoder creates a numeric encoder using the given byte order.
func NewNumericEncoder(engine endian.EndianEngine) *NumericEncoder {
	return &NumericEncoder{engine: engine}
}

func (e *NumericEncoder) Write(v float64) {
	e.buf = e.engine.AppendUint64(e.buf, math.Float64bits(v))
	e.count++
}

// WriteSlice grows the buffer once for the whole slice.
func (e *NumericEncoder) WriteSlice(values []float64) {
	if free := cap(e.buf) - len(e.buf); free < 8*len(values) {
		grown := make([]byte, len(e.buf), len(e.buf)+8*len(values))
		copy(grown, e.buf)
		e.buf = grown
	}
	for _, v := range values {
		e.buf = e.engine.AppendUint64(e.buf, math.Float64bits(v))
	}
	e.count += len(values)
}

func (e *NumericEncoder) Bytes() []byte { return e.buf }
func (e *NumericEncoder) Len() int      { return e.count }
func (e *NumericEncoder) Size() int     { return len(e.buf) }

func (e *NumericEncoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
}

// NumericDecoder decodes raw float64 columns.
type NumericDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnDecoder[float64] = NumericDecoder{}

// NewNumericDecoder creates a numeric decoder using the given byte order.
func NewNumericDecoder(engine endian.EndianEngine) NumericDecoder {
	return NumericDecoder{engine: engine}
}

func (d NumericDecoder) Decode(data []byte, count int) ([]float64, error) {
	if len(data) != 8*count {
		return nil, fmt.Errorf("%w: numeric column holds %d bytes for %d values", errs.ErrInvalidSnapshot, len(data), count)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(d.engine.Uint64(data[8*i:]))
	}

	return out, nil
}
