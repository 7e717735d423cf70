// Package compress provides the block codecs used for dataset snapshot payloads.
//
// A snapshot stores all of its columns as one concatenated payload which is
// compressed as a single block with the codec named in the snapshot header:
//
//   - None: payload stored as-is
//   - Zstd: best ratio; pure Go (klauspost/compress) by default, cgo
//     (valyala/gozstd) when built with the gozstd tag
//   - S2: balanced speed and ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4)
//
// Numeric columns of count data and small integer covariates are highly
// repetitive once laid out as float64 values, so Zstd typically shrinks a
// snapshot several times over while LZ4 and S2 trade some ratio for speed.
//
// All codecs are stateless values and safe for concurrent use; encoder and
// decoder state is pooled internally.
package compress
