package compress

// ZstdCompressor is the Zstandard codec. The implementation is selected at
// build time: pure Go by default, cgo libzstd with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
