package poisson

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InferenceStatus tells whether standard errors could be derived.
type InferenceStatus int

const (
	// InferenceOK means the information matrix was inverted.
	InferenceOK InferenceStatus = iota
	// InferenceSingular means the information matrix is singular or too
	// ill-conditioned; standard errors are undefined.
	InferenceSingular
)

// String returns the status name.
func (s InferenceStatus) String() string {
	switch s {
	case InferenceOK:
		return "ok"
	case InferenceSingular:
		return "singular"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Poisson maximum likelihood fit.
type Result struct {
	// Names labels the coefficients in design-matrix column order.
	Names []string
	// Coefficients is the estimate β̂.
	Coefficients []float64
	// StdErrors holds one standard error per coefficient, NaN when undefined.
	StdErrors []float64
	// Covariance is the inverse observed information, nil when undefined.
	Covariance *mat.SymDense
	// LogLikelihood is ℓ(β̂) including the logΓ(y+1) term.
	LogLikelihood float64
	// Converged reports whether the optimizer met its convergence criteria.
	Converged bool
	// Status is the optimizer termination status.
	Status string
	// Method is the optimizer used.
	Method Method
	// Iterations, FuncEvaluations and GradEvaluations are optimizer counters.
	Iterations      int
	FuncEvaluations int
	GradEvaluations int
	// GradientNorm is the max-norm of ∇ℓ(β̂) divided by the number of observations.
	GradientNorm float64
	// InferenceStatus tells whether StdErrors and Covariance are defined.
	InferenceStatus InferenceStatus
	// InferenceErr wraps errs.ErrSingularInformation when InferenceStatus is
	// InferenceSingular.
	InferenceErr error
	// Aliased lists the columns found linearly dependent on earlier columns
	// in the weighted information matrix.
	Aliased []int
	// ConditionNumber is the condition number estimate of the information
	// matrix, +Inf when it could not be factorized.
	ConditionNumber float64
	// ClippedRows counts observations whose linear predictor was outside the
	// overflow guard's range at β̂.
	ClippedRows int
	// NumObs is the number of observations.
	NumObs int
}

// Coefficient is one row of a coefficient table.
type Coefficient struct {
	Name     string
	Estimate float64
	// StdErr is NaN when StdErrDefined is false.
	StdErr        float64
	StdErrDefined bool
	// Z is Estimate/StdErr; NaN when the standard error is undefined.
	Z float64
	// P is the two-sided p-value under the normal approximation.
	P float64
}

// Rate returns exp(β̂₀), the fitted rate when the first column is the intercept.
func (r *Result) Rate() float64 {
	if len(r.Coefficients) == 0 {
		return math.NaN()
	}

	return math.Exp(r.Coefficients[0])
}

// Reliable reports whether the fit converged and standard errors are defined.
func (r *Result) Reliable() bool {
	return r.Converged && r.InferenceStatus == InferenceOK && r.ClippedRows == 0
}

// Table returns the coefficient table in column order.
func (r *Result) Table() []Coefficient {
	out := make([]Coefficient, len(r.Coefficients))
	for j, est := range r.Coefficients {
		c := Coefficient{
			Name:     r.Names[j],
			Estimate: est,
			StdErr:   math.NaN(),
			Z:        math.NaN(),
			P:        math.NaN(),
		}
		if se := r.StdErrors[j]; !math.IsNaN(se) {
			c.StdErr = se
			c.StdErrDefined = true
			if se > 0 {
				c.Z = est / se
				c.P = 2 * distuv.UnitNormal.Survival(math.Abs(c.Z))
			}
		}
		out[j] = c
	}

	return out
}

// String returns a one-line summary of the fit.
func (r *Result) String() string {
	return fmt.Sprintf("Result{Coefficients: %d, LogLik: %.4f, Converged: %t, Status: %s, Inference: %s}",
		len(r.Coefficients), r.LogLikelihood, r.Converged, r.Status, r.InferenceStatus)
}
