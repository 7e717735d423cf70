// Package section defines the fixed-size binary structures of the dataset
// snapshot format.
//
// A snapshot is laid out as:
//
//	+----------------------+ 0
//	| Header (32 bytes)    |
//	+----------------------+ IndexOffset
//	| Index entries        |  ColumnCount x 16 bytes
//	+----------------------+ NamesOffset
//	| Column names         |  uint16 length-prefixed
//	+----------------------+ PayloadOffset
//	| Compressed payload   |  one block, codec from Header.Compression
//	+----------------------+
//
// All multi-byte fields are little-endian. The header's checksum covers every
// byte that follows the header.
package section
