package poisson

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// kernel evaluates Σ_i [y_i·η_i − λ_i] under the overflow guard and, when grad
// is non-nil, overwrites it with Σ_i (y_i − dλ_i/dη_i)·X_i. It also returns the
// number of rows on which the guard engaged.
func kernel(beta, y []float64, x *mat.Dense, bound float64, grad []float64) (value float64, clipped int) {
	if grad != nil {
		for j := range grad {
			grad[j] = 0
		}
	}

	for i, yi := range y {
		row := x.RawRowView(i)
		eta := floats.Dot(row, beta)
		rate, slope, c := clampPredictor(eta, bound)
		if c {
			clipped++
		}
		value += yi*eta - rate

		if grad != nil {
			r := yi - slope
			for j, v := range row {
				grad[j] += r * v
			}
		}
	}

	return value, clipped
}

// logFactorialSum returns Σ logΓ(y_i+1), the β-free term of the log-likelihood.
func logFactorialSum(y []float64) float64 {
	var s float64
	for _, yi := range y {
		lg, _ := math.Lgamma(yi + 1)
		s += lg
	}

	return s
}

// LogLikelihood returns the full Poisson log-likelihood ℓ(β), including the
// logΓ(y+1) constant, using the default overflow guard.
//
// beta must have one entry per column of x and y one entry per row.
func LogLikelihood(beta, y []float64, x mat.Matrix) float64 {
	k, _ := kernel(beta, y, asDense(x), DefaultPredictorBound, nil)
	return k - logFactorialSum(y)
}

// Gradient writes ∇ℓ(β) = Xᵗ(Y − λ) into dst and returns it. A nil or short
// dst is replaced by a new slice.
func Gradient(dst, beta, y []float64, x mat.Matrix) []float64 {
	if len(dst) < len(beta) {
		dst = make([]float64, len(beta))
	}
	dst = dst[:len(beta)]
	kernel(beta, y, asDense(x), DefaultPredictorBound, dst)

	return dst
}

// Information returns the observed information matrix −∇²ℓ(β) = Xᵗ diag(λ) X.
func Information(beta []float64, x mat.Matrix) *mat.SymDense {
	return information(beta, asDense(x), DefaultPredictorBound)
}

func information(beta []float64, x *mat.Dense, bound float64) *mat.SymDense {
	n, p := x.Dims()
	info := mat.NewSymDense(p, nil)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		w := curvature(floats.Dot(row, beta), bound)
		if w == 0 {
			continue
		}
		info.SymRankOne(info, w, mat.NewVecDense(p, row))
	}

	return info
}

// ScalarLogLikelihood returns the log-likelihood of counts y under a single
// global rate lambda. A non-positive or NaN rate is outside the Poisson
// domain and yields −∞.
func ScalarLogLikelihood(lambda float64, y []float64) float64 {
	if !(lambda > 0) {
		return math.Inf(-1)
	}

	var sum float64
	for _, yi := range y {
		sum += yi
	}
	logLambda := math.Log(lambda)

	return sum*logLambda - float64(len(y))*lambda - logFactorialSum(y)
}

// RateMLE returns the closed-form maximum likelihood rate of an
// intercept-only model, the sample mean of y.
func RateMLE(y []float64) float64 {
	if len(y) == 0 {
		return math.NaN()
	}

	return stat.Mean(y, nil)
}
