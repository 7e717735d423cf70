package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/format"
	"github.com/stretchr/testify/require"
)

const visitsCSV = `# clinic visits
visits, age, group
2, 31, control
3, 45, treated
NA, 52, treated
5, 38,
4, 61, control
7, 29, treated
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(visitsCSV))
	require.NoError(t, err)

	require.Equal(t, []string{"visits", "age", "group"}, tbl.Names())
	require.Equal(t, 6, tbl.Rows())

	visits, err := tbl.Column("visits")
	require.NoError(t, err)
	require.Equal(t, format.KindNumeric, visits.Kind)
	require.True(t, math.IsNaN(visits.Floats[2]))
	require.Equal(t, 7.0, visits.Floats[5])

	group, err := tbl.Column("group")
	require.NoError(t, err)
	require.Equal(t, format.KindText, group.Kind)
	require.Equal(t, "", group.Strings[3])
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"Empty input", "", errs.ErrEmptyTable},
		{"Header only", "y,x\n", errs.ErrEmptyTable},
		{"Ragged row", "y,x\n1,2\n3\n", errs.ErrRaggedRow},
		{"Duplicate header", "y,y\n1,2\n", errs.ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadCSV_InfinityIsText(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("x\n1\nInf\n"))
	require.NoError(t, err)

	c, err := tbl.Column("x")
	require.NoError(t, err)
	require.Equal(t, format.KindText, c.Kind)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "visits.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(visitsCSV), 0o600))

	fromCSV, err := Load(csvPath)
	require.NoError(t, err)

	data, err := Encode(fromCSV)
	require.NoError(t, err)
	require.True(t, IsSnapshot(data))
	require.False(t, IsSnapshot([]byte(visitsCSV)))

	snapPath := filepath.Join(dir, "visits.cfs")
	require.NoError(t, os.WriteFile(snapPath, data, 0o600))

	fromSnapshot, err := Load(snapPath)
	require.NoError(t, err)
	require.Equal(t, fromCSV.Names(), fromSnapshot.Names())
	require.Equal(t, fromCSV.Rows(), fromSnapshot.Rows())

	_, err = Load(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
