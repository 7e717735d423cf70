package encoding

// ColumnEncoder encodes the cells of one column.
type ColumnEncoder[T any] interface {
	// Write appends a single value.
	Write(v T)
	// WriteSlice appends a slice of values.
	WriteSlice(values []T)
	// Bytes returns the encoded data. The slice is valid until the next Write,
	// WriteSlice or Reset call and must not be modified.
	Bytes() []byte
	// Len returns the number of values written since the last Reset.
	Len() int
	// Size returns the number of bytes written since the last Reset.
	Size() int
	// Reset empties the encoder while keeping its buffer capacity.
	Reset()
}

// ColumnDecoder decodes the cells of one column.
type ColumnDecoder[T any] interface {
	// Decode returns exactly count values, or an error when data holds more or
	// fewer.
	Decode(data []byte, count int) ([]T, error)
}
