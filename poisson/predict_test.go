package poisson

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/countfit/errs"
)

func TestPredict(t *testing.T) {
	y, x := indicatorData()
	res, err := Fit(y, x, WithNames("intercept", "treated"))
	require.NoError(t, err)

	lam, err := res.Predict(design([]float64{1, 0}, []float64{1, 1}, []float64{1, 0.5}))
	require.NoError(t, err)
	require.InDelta(t, 3.0, lam[0], 1e-4)
	require.InDelta(t, 6.0, lam[1], 1e-4)
	require.InDelta(t, 3*math.Sqrt2, lam[2], 1e-4)

	_, err = res.Predict(interceptOnly(2))
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestContrast(t *testing.T) {
	y, x := indicatorData()
	res, err := Fit(y, x, WithNames("intercept", "treated"))
	require.NoError(t, err)

	before := x.At(0, 1)
	c, err := res.Contrast(x, 1, 0, 1)
	require.NoError(t, err)
	require.Equal(t, before, x.At(0, 1), "input design must not be modified")

	require.Equal(t, "treated", c.Name)
	require.InDelta(t, 3.0, c.MeanBase, 1e-4)
	require.InDelta(t, 6.0, c.MeanTreated, 1e-4)
	require.InDelta(t, 3.0, c.Difference, 1e-4)
	require.InDelta(t, 2.0, c.Ratio, 1e-4)
	require.True(t, strings.HasPrefix(c.String(), "Contrast{treated: 0→1"))

	_, err = res.Contrast(x, 2, 0, 1)
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)
	_, err = res.Contrast(x, -1, 0, 1)
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)
	_, err = res.Contrast(interceptOnly(3), 0, 0, 1)
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestResultTable(t *testing.T) {
	y, x := indicatorData()
	res, err := Fit(y, x, WithNames("intercept", "treated"))
	require.NoError(t, err)

	table := res.Table()
	require.Len(t, table, 2)
	require.Equal(t, "intercept", table[0].Name)
	require.Equal(t, "treated", table[1].Name)

	for _, c := range table {
		require.True(t, c.StdErrDefined)
		require.InDelta(t, c.Estimate/c.StdErr, c.Z, 1e-12)
		require.Greater(t, c.P, 0.0)
		require.Less(t, c.P, 1.0)
	}
	// z ≈ 0.6931/0.3162 ≈ 2.19, two-sided p ≈ 0.028.
	require.InDelta(t, 0.0284, table[1].P, 1e-3)
}

func TestResultString(t *testing.T) {
	y, x := indicatorData()
	res, err := Fit(y, x)
	require.NoError(t, err)

	s := res.String()
	require.Contains(t, s, "Coefficients: 2")
	require.Contains(t, s, "Converged: true")
	require.Contains(t, s, "Inference: ok")
	require.Equal(t, []string{"x0", "x1"}, res.Names)

	require.Equal(t, "singular", InferenceSingular.String())
	require.Equal(t, "unknown", InferenceStatus(7).String())
	require.True(t, math.IsNaN((&Result{}).Rate()))
}

func TestErrorStrings(t *testing.T) {
	ie := inputErrorf("dimensions", "%d counts but design matrix has %d rows", 3, 2)
	require.Equal(t, "invalid input: dimensions: 3 counts but design matrix has 2 rows", ie.Error())

	ce := &ConvergenceError{Status: "IterationLimit", Iterations: 5, GradientNorm: 0.5, Err: fmt.Errorf("boom")}
	require.Equal(t, "optimizer did not converge: status=IterationLimit iterations=5 gradient=0.5: boom", ce.Error())
	require.ErrorIs(t, ce, errs.ErrNotConverged)

	var nilInput *InputError
	require.Equal(t, "<nil>", nilInput.Error())
	var nilConv *ConvergenceError
	require.Equal(t, "<nil>", nilConv.Error())
	require.NoError(t, nilConv.Unwrap())
}
