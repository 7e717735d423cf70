package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/countfit/errs"
)

// missingTokens are the cell values read as missing, compared case-insensitively
// after trimming.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"nan":  {},
	"null": {},
}

func isMissing(cell string) bool {
	_, ok := missingTokens[strings.ToLower(cell)]

	return ok
}

// ReadCSV reads a table from CSV with a header row.
//
// A column becomes numeric when every non-missing cell parses as a float, and
// text otherwise. Cells equal to "", "NA", "NaN" or "null" are missing. Rows
// with a different field count than the header fail with errs.ErrRaggedRow.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", errs.ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				errs.ErrRaggedRow, parseErr.StartLine, len(record), len(header))
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		for i, cell := range record {
			cells[i] = append(cells[i], strings.TrimSpace(cell))
		}
	}

	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, errs.ErrEmptyTable
	}

	t := NewTable()
	for i, name := range header {
		name = strings.TrimSpace(name)
		if floats, ok := parseNumeric(cells[i]); ok {
			err = t.AddNumeric(name, floats)
		} else {
			err = t.AddText(name, normalizeText(cells[i]))
		}
		if err != nil {
			return nil, fmt.Errorf("csv column %d: %w", i+1, err)
		}
	}

	return t, nil
}

func parseNumeric(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, cell := range cells {
		if isMissing(cell) {
			out[i] = math.NaN()
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(v, 0) {
			return nil, false
		}
		out[i] = v
	}

	return out, true
}

func normalizeText(cells []string) []string {
	for i, cell := range cells {
		if isMissing(cell) {
			cells[i] = ""
		}
	}

	return cells
}
