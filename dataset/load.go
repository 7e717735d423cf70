package dataset

import (
	"bytes"
	"fmt"
	"os"

	"github.com/arloliu/countfit/section"
)

// IsSnapshot reports whether data looks like an encoded snapshot rather than
// CSV text.
func IsSnapshot(data []byte) bool {
	return section.HasMagic(data)
}

// Load reads a table from path, decoding it as a snapshot when the file starts
// with the snapshot magic number and as CSV otherwise.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t *Table
	if IsSnapshot(data) {
		t, err = Decode(data)
	} else {
		t, err = ReadCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return t, nil
}
