package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// visitsTable is a small clinic-visits style table with one missing count and
// one missing group.
func visitsTable(t *testing.T) *Table {
	t.Helper()

	tbl := NewTable()
	require.NoError(t, tbl.AddNumeric("visits", []float64{2, 3, math.NaN(), 5, 4, 7}))
	require.NoError(t, tbl.AddNumeric("age", []float64{31, 45, 52, 38, 61, 29}))
	require.NoError(t, tbl.AddText("group", []string{"control", "treated", "treated", "", "control", "treated"}))

	return tbl
}
