// Package encoding provides the column codecs of the dataset snapshot payload.
//
// Numeric columns are stored as raw IEEE 754 float64 values, with NaN marking
// a missing cell. Text columns are stored as uint32 length-prefixed UTF-8
// strings, with the empty string marking a missing cell. Both use the byte
// order of the supplied endian engine.
//
// Encoders append to an internal buffer that can be reused across columns:
//
//	enc := encoding.NewNumericEncoder(endian.GetLittleEndianEngine())
//	enc.WriteSlice(values)
//	payload = append(payload, enc.Bytes()...)
//	enc.Reset()
//
// Decoders validate that the data holds exactly the requested number of
// values.
package encoding
