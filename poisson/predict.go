package poisson

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/countfit/errs"
)

// Predict returns the fitted rates λ̂_i = exp(X_i·β̂) for the rows of x.
//
// x may hold rows never seen during the fit but must have the same columns in
// the same order. Predictions are not passed through the overflow guard; an
// extreme row yields +Inf.
func (r *Result) Predict(x mat.Matrix) ([]float64, error) {
	rows, cols := x.Dims()
	if cols != len(r.Coefficients) {
		return nil, fmt.Errorf("%w: design has %d columns, model has %d coefficients",
			errs.ErrDimensionMismatch, cols, len(r.Coefficients))
	}

	dense := asDense(x)
	out := make([]float64, rows)
	for i := range out {
		out[i] = math.Exp(floats.Dot(dense.RawRowView(i), r.Coefficients))
	}

	return out, nil
}

// Contrast compares mean predicted counts between two scenarios that differ
// only in one column of the design.
type Contrast struct {
	// Column is the index of the varied column and Name its coefficient name.
	Column int
	Name   string
	// Base and Treated are the values written into the column.
	Base    float64
	Treated float64
	// MeanBase and MeanTreated are the average predicted rates.
	MeanBase    float64
	MeanTreated float64
	// Difference is MeanTreated − MeanBase, the average per-row effect.
	Difference float64
	// Ratio is MeanTreated / MeanBase.
	Ratio float64
}

// String returns a one-line summary of the contrast.
func (c Contrast) String() string {
	return fmt.Sprintf("Contrast{%s: %g→%g, mean %.4f→%.4f, diff %.4f, ratio %.4f}",
		c.Name, c.Base, c.Treated, c.MeanBase, c.MeanTreated, c.Difference, c.Ratio)
}

// Contrast predicts every row of x twice, once with column set to base and
// once with it set to treated, and compares the average predicted counts.
// x itself is not modified.
func (r *Result) Contrast(x mat.Matrix, column int, base, treated float64) (Contrast, error) {
	rows, cols := x.Dims()
	if cols != len(r.Coefficients) {
		return Contrast{}, fmt.Errorf("%w: design has %d columns, model has %d coefficients",
			errs.ErrDimensionMismatch, cols, len(r.Coefficients))
	}
	if column < 0 || column >= cols {
		return Contrast{}, fmt.Errorf("%w: column %d out of range [0, %d)", errs.ErrDimensionMismatch, column, cols)
	}
	if rows == 0 {
		return Contrast{}, fmt.Errorf("%w: no rows to predict", errs.ErrInvalidInput)
	}

	scenario := mat.DenseCopyOf(x)
	setColumn := func(v float64) {
		for i := 0; i < rows; i++ {
			scenario.Set(i, column, v)
		}
	}

	setColumn(base)
	lamBase, err := r.Predict(scenario)
	if err != nil {
		return Contrast{}, err
	}

	setColumn(treated)
	lamTreated, err := r.Predict(scenario)
	if err != nil {
		return Contrast{}, err
	}

	c := Contrast{
		Column:      column,
		Name:        r.Names[column],
		Base:        base,
		Treated:     treated,
		MeanBase:    stat.Mean(lamBase, nil),
		MeanTreated: stat.Mean(lamTreated, nil),
	}
	c.Difference = c.MeanTreated - c.MeanBase
	c.Ratio = c.MeanTreated / c.MeanBase

	return c, nil
}
