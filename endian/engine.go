// Package endian provides the byte order engine used by the snapshot codec.
//
// EndianEngine combines encoding/binary's ByteOrder and AppendByteOrder so the
// encoder can append fixed-width values directly to its output buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, math.Float64bits(v))
//
// The engine is stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine is satisfied by binary.LittleEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the snapshot default.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
