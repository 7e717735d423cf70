package poisson

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func interceptOnly(n int) *mat.Dense {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	return mat.NewDense(n, 1, ones)
}

// design builds a dense matrix from rows.
func design(rows ...[]float64) *mat.Dense {
	p := len(rows[0])
	data := make([]float64, 0, len(rows)*p)
	for _, r := range rows {
		data = append(data, r...)
	}

	return mat.NewDense(len(rows), p, data)
}

func floatsOf(ints ...int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}

	return out
}

// samplePoisson draws from Poisson(lambda) by inverting the CDF, so results
// depend only on rng.
func samplePoisson(rng *rand.Rand, lambda float64) float64 {
	d := distuv.Poisson{Lambda: lambda}
	u := rng.Float64()
	k := 0.0
	for d.CDF(k) < u {
		k++
	}

	return k
}

// indicatorData has mean 3 when the indicator is 0 and mean 6 when it is 1.
func indicatorData() ([]float64, *mat.Dense) {
	y := floatsOf(2, 3, 4, 3, 3, 6, 5, 7, 6, 6)
	x := design(
		[]float64{1, 0}, []float64{1, 0}, []float64{1, 0}, []float64{1, 0}, []float64{1, 0},
		[]float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1},
	)

	return y, x
}

// trendData regresses counts on a linear trend.
func trendData() ([]float64, *mat.Dense) {
	y := floatsOf(1, 0, 2, 3, 2, 4, 6, 5, 9, 11)
	rows := make([][]float64, len(y))
	for i := range rows {
		rows[i] = []float64{1, float64(i) / 3}
	}

	return y, design(rows...)
}
