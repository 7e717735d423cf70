// Package hash derives stable identifiers for dataset columns.
package hash

import "github.com/cespare/xxhash/v2"

// ColumnID returns the xxHash64 of a column name. Snapshot indexes store this
// value instead of the name so lookups do not need to scan the names section.
func ColumnID(name string) uint64 {
	return xxhash.Sum64String(name)
}

