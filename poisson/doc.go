// Package poisson fits Poisson regression models by maximum likelihood.
//
// The model relates a vector of non-negative integer counts Y to a design
// matrix X through the log link:
//
//	λ_i = exp(X_i·β)
//	ℓ(β) = Σ_i [ Y_i·(X_i·β) − exp(X_i·β) − logΓ(Y_i+1) ]
//
// Fit maximizes ℓ with a quasi-Newton method from gonum/optimize (BFGS by
// default, L-BFGS on request) starting from β = 0, using the analytic
// gradient Xᵗ(Y − λ). Standard errors come from the inverse of the observed
// information matrix Xᵗ diag(λ) X at the estimate.
//
// # Basic Usage
//
//	x := mat.NewDense(4, 2, []float64{
//	    1, 0,
//	    1, 0,
//	    1, 1,
//	    1, 1,
//	})
//	res, err := poisson.FitCounts([]int{2, 4, 6, 6}, x, poisson.WithNames("intercept", "treated"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range res.Table() {
//	    fmt.Printf("%s %.4f (%.4f)\n", c.Name, c.Estimate, c.StdErr)
//	}
//
// # Outcomes
//
// A fit ends in one of three ways:
//
//   - Success: Converged is true and InferenceStatus is InferenceOK.
//   - Degraded success: Converged is true but the information matrix is
//     singular (for example a duplicated column). Coefficients are returned,
//     standard errors are NaN with StdErrDefined false, and InferenceErr
//     wraps errs.ErrSingularInformation.
//   - Failure: the optimizer stopped without converging. Fit returns a
//     *ConvergenceError unless WithAcceptNonConverged(true) was given, in which
//     case the last iterate is returned with Converged false.
//
// Invalid inputs (mismatched dimensions, negative or fractional counts, empty
// data, more coefficients than observations) are rejected with an *InputError
// before the optimizer runs.
//
// # Overflow Guard
//
// exp(η) overflows for large linear predictors. The rate is computed through
// clampPredictor, which limits η to [−B, B] (B = 30 by default) and keeps the
// objective convex outside that range. The guard only engages far from any
// reasonable optimum; Result.ClippedRows reports how many observations sat
// outside the range at the estimate, so a non-zero value points at divergence
// rather than a genuine fit.
//
// # Concurrency
//
// Fit has no shared state. Inputs are only read, and concurrent fits on the
// same data are safe.
package poisson
