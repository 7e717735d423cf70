package poisson

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/countfit/errs"
)

// inference holds the standard-error derivation at β̂.
type inference struct {
	status     InferenceStatus
	err        error
	stdErrors  []float64
	covariance *mat.SymDense
	cond       float64
	aliased    []int
}

// deriveInference inverts the observed information matrix. When the matrix
// cannot be factorized, is too ill-conditioned, or yields a non-positive
// variance, every standard error is NaN and the aliased columns are located.
func deriveInference(info *mat.SymDense, conditionLimit float64) inference {
	p := info.SymmetricDim()
	res := inference{
		stdErrors: make([]float64, p),
		cond:      math.Inf(1),
	}
	for j := range res.stdErrors {
		res.stdErrors[j] = math.NaN()
	}

	var chol mat.Cholesky
	if !chol.Factorize(info) {
		return res.singular(info, conditionLimit, "cholesky factorization failed")
	}

	res.cond = chol.Cond()
	if math.IsNaN(res.cond) || res.cond > conditionLimit {
		return res.singular(info, conditionLimit, fmt.Sprintf("condition number %.3g exceeds %.3g", res.cond, conditionLimit))
	}

	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return res.singular(info, conditionLimit, err.Error())
	}

	for j := 0; j < p; j++ {
		v := cov.At(j, j)
		if !(v > 0) || math.IsInf(v, 0) {
			return res.singular(info, conditionLimit, fmt.Sprintf("variance of coefficient %d is %g", j, v))
		}
		res.stdErrors[j] = math.Sqrt(v)
	}

	res.status = InferenceOK
	res.covariance = &cov

	return res
}

func (res inference) singular(info *mat.SymDense, conditionLimit float64, reason string) inference {
	for j := range res.stdErrors {
		res.stdErrors[j] = math.NaN()
	}
	res.status = InferenceSingular
	res.covariance = nil
	res.err = fmt.Errorf("%w: %s", errs.ErrSingularInformation, reason)
	res.aliased = aliasedColumns(info, conditionLimit)

	return res
}

// aliasedColumns scans columns left to right and reports each column whose
// addition makes the retained block of the information matrix singular or
// too ill-conditioned.
func aliasedColumns(info *mat.SymDense, conditionLimit float64) []int {
	p := info.SymmetricDim()
	kept := make([]int, 0, p)
	var aliased []int

	for j := 0; j < p; j++ {
		candidate := append(kept[:len(kept):len(kept)], j)
		sub := mat.NewSymDense(len(candidate), nil)
		for a, ia := range candidate {
			for b := a; b < len(candidate); b++ {
				sub.SetSym(a, b, info.At(ia, candidate[b]))
			}
		}

		var chol mat.Cholesky
		if chol.Factorize(sub) && chol.Cond() <= conditionLimit {
			kept = candidate
			continue
		}
		aliased = append(aliased, j)
	}

	return aliased
}
