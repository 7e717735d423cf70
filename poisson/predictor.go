package poisson

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// clampPredictor is the overflow guard between the linear predictor and the
// Poisson rate. It is a numerical patch, not part of the model.
//
// Inside [-bound, bound] it returns exp(eta) and its derivative. Below the
// range the rate is floored at exp(-bound) with zero slope. Above it the rate
// follows the tangent of exp at bound, which keeps the objective convex and
// bounded below instead of letting the cap open a descent direction for
// positive counts. clipped reports whether the guard engaged.
func clampPredictor(eta, bound float64) (rate, slope float64, clipped bool) {
	switch {
	case eta < -bound:
		return math.Exp(-bound), 0, true
	case eta > bound:
		edge := math.Exp(bound)
		return edge * (1 + eta - bound), edge, true
	default:
		r := math.Exp(eta)
		return r, r, false
	}
}

// curvature returns d²λ/dη² under the guard: exp(eta) inside the range, zero
// outside.
func curvature(eta, bound float64) float64 {
	if eta < -bound || eta > bound {
		return 0
	}

	return math.Exp(eta)
}

// asDense returns x as a *mat.Dense, copying only when needed.
func asDense(x mat.Matrix) *mat.Dense {
	if d, ok := x.(*mat.Dense); ok {
		return d
	}

	return mat.DenseCopyOf(x)
}
