package design

import (
	"math"
	"testing"

	"github.com/arloliu/countfit/dataset"
	"github.com/arloliu/countfit/errs"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func clinicTable(t *testing.T) *dataset.Table {
	t.Helper()

	tbl := dataset.NewTable()
	require.NoError(t, tbl.AddNumeric("visits", []float64{2, 3, 4, math.NaN(), 6, 1}))
	require.NoError(t, tbl.AddNumeric("age", []float64{30, 40, 50, 60, 20, 10}))
	require.NoError(t, tbl.AddText("arm", []string{"placebo", "low", "high", "low", "high", "placebo"}))

	return tbl
}

func TestBuild(t *testing.T) {
	spec := Spec{
		Response:    "visits",
		Intercept:   true,
		Numeric:     []string{"age"},
		Squared:     []string{"age"},
		Categorical: []Categorical{{Column: "arm", Reference: "placebo"}},
	}

	m, err := Build(clinicTable(t), spec)
	require.NoError(t, err)

	require.Equal(t, []string{"intercept", "age", "age^2", "arm[high]", "arm[low]"}, m.Names)
	require.Equal(t, []float64{2, 3, 4, 6, 1}, m.Response)
	require.Equal(t, 1, m.Dropped)

	r, c := m.X.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)

	want := mat.NewDense(5, 5, []float64{
		1, 30, 900, 0, 0,
		1, 40, 1600, 0, 1,
		1, 50, 2500, 1, 0,
		1, 20, 400, 1, 0,
		1, 10, 100, 0, 0,
	})
	require.True(t, mat.Equal(want, m.X))

	require.Len(t, m.Terms, 4)
	arm := m.Terms[3]
	require.Equal(t, "arm", arm.Source)
	require.Equal(t, "placebo", arm.Reference)
	require.Equal(t, []string{"high", "low"}, arm.Levels)
	require.Equal(t, 3, arm.First)
	require.Equal(t, 2, arm.Count)

	idx, ok := m.Index("arm[low]")
	require.True(t, ok)
	require.Equal(t, 4, idx)
	_, ok = m.Index("arm[placebo]")
	require.False(t, ok)
}

func TestBuild_DefaultReference(t *testing.T) {
	m, err := Build(clinicTable(t), Spec{
		Response:    "visits",
		Intercept:   true,
		Categorical: []Categorical{{Column: "arm"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"intercept", "arm[low]", "arm[placebo]"}, m.Names)
	require.Equal(t, "high", m.Terms[1].Reference)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"No terms", Spec{Response: "visits"}, errs.ErrEmptyDesign},
		{"Unknown response", Spec{Response: "cost", Intercept: true}, errs.ErrUnknownColumn},
		{"Text response", Spec{Response: "arm", Intercept: true}, errs.ErrColumnKind},
		{"Unknown numeric", Spec{Response: "visits", Numeric: []string{"bmi"}}, errs.ErrUnknownColumn},
		{"Text numeric", Spec{Response: "visits", Numeric: []string{"arm"}}, errs.ErrColumnKind},
		{"Unknown level", Spec{Response: "visits", Intercept: true, Categorical: []Categorical{{Column: "arm", Reference: "max"}}}, errs.ErrUnknownLevel},
		{"Duplicate term", Spec{Response: "visits", Numeric: []string{"age", "age"}}, errs.ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(clinicTable(t), tt.spec)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_NoCompleteRows(t *testing.T) {
	tbl := dataset.NewTable()
	require.NoError(t, tbl.AddNumeric("y", []float64{math.NaN(), 1}))
	require.NoError(t, tbl.AddNumeric("x", []float64{1, math.NaN()}))

	_, err := Build(tbl, Spec{Response: "y", Numeric: []string{"x"}})
	require.ErrorIs(t, err, errs.ErrEmptyTable)
}

func TestBuild_SingleLevelCategorical(t *testing.T) {
	tbl := dataset.NewTable()
	require.NoError(t, tbl.AddNumeric("y", []float64{1, 2}))
	require.NoError(t, tbl.AddText("site", []string{"north", "north"}))

	_, err := Build(tbl, Spec{Response: "y", Categorical: []Categorical{{Column: "site"}}})
	require.ErrorIs(t, err, errs.ErrEmptyDesign)
}

func TestSpec_Validate(t *testing.T) {
	require.Error(t, Spec{Intercept: true}.Validate())
	require.Error(t, Spec{Response: "y", Categorical: []Categorical{{}}}.Validate())
	require.NoError(t, Spec{Response: "y", Intercept: true}.Validate())
}

func TestSpec_Formula(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{Response: "y", Intercept: true}, "y ~ 1"},
		{Spec{Response: "y", Intercept: true, Numeric: []string{"age"}, Squared: []string{"age"}}, "y ~ age + age^2"},
		{Spec{Response: "y", Numeric: []string{"x"}, Categorical: []Categorical{{Column: "arm"}}}, "y ~ x + C(arm) - 1"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.spec.Formula())
	}
}
