package poisson

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/arloliu/countfit/internal/options"
)

// Method selects the quasi-Newton optimizer.
type Method int

const (
	// MethodBFGS uses the dense BFGS update. It suits the small coefficient
	// counts typical of count regressions.
	MethodBFGS Method = iota
	// MethodLBFGS uses limited-memory BFGS.
	MethodLBFGS
)

var methodNames = map[Method]string{
	MethodBFGS:  "bfgs",
	MethodLBFGS: "lbfgs",
}

// String returns the method name.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}

	return "unknown"
}

// ParseMethod maps a case-insensitive method name to a Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown optimizer method %q (expected bfgs|lbfgs)", name)
}

const (
	// DefaultMaxIterations bounds the optimizer's major iterations.
	DefaultMaxIterations = 1000
	// DefaultGradientTolerance is the max-norm threshold on the gradient of the
	// per-observation negative log-likelihood.
	DefaultGradientTolerance = 1e-8
	// DefaultPredictorBound limits |η| before exponentiation.
	DefaultPredictorBound = 30.0
	// DefaultConditionLimit is the largest condition number of the information
	// matrix for which standard errors are reported.
	DefaultConditionLimit = 1e12
)

// FitConfig holds the settings of a single fit.
type FitConfig struct {
	Method             Method
	MaxIterations      int
	GradientTolerance  float64
	PredictorBound     float64
	ConditionLimit     float64
	AcceptNonConverged bool
	// Names labels the coefficients; defaults to x0..x{p-1}.
	Names []string
	// Initial is the starting point; defaults to the zero vector.
	Initial []float64
	Logger  *zap.Logger
}

// Option is a functional option for FitConfig.
type Option = options.Option[*FitConfig]

func defaultFitConfig() FitConfig {
	return FitConfig{
		Method:            MethodBFGS,
		MaxIterations:     DefaultMaxIterations,
		GradientTolerance: DefaultGradientTolerance,
		PredictorBound:    DefaultPredictorBound,
		ConditionLimit:    DefaultConditionLimit,
		Logger:            zap.NewNop(),
	}
}

// WithMethod selects the optimizer.
func WithMethod(m Method) Option {
	return options.New(func(cfg *FitConfig) error {
		if _, ok := methodNames[m]; !ok {
			return fmt.Errorf("unknown optimizer method %d", int(m))
		}
		cfg.Method = m

		return nil
	})
}

// WithMaxIterations sets the optimizer's major iteration budget.
func WithMaxIterations(n int) Option {
	return options.New(func(cfg *FitConfig) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		cfg.MaxIterations = n

		return nil
	})
}

// WithGradientTolerance sets the convergence threshold on the gradient max-norm
// of the per-observation negative log-likelihood.
func WithGradientTolerance(tol float64) Option {
	return options.New(func(cfg *FitConfig) error {
		if !(tol > 0) || math.IsInf(tol, 0) {
			return fmt.Errorf("gradient tolerance must be positive and finite, got %g", tol)
		}
		cfg.GradientTolerance = tol

		return nil
	})
}

// WithPredictorBound sets the overflow guard on |η|.
func WithPredictorBound(bound float64) Option {
	return options.New(func(cfg *FitConfig) error {
		// exp(709) is the largest finite float64 exponential.
		if !(bound > 0) || bound > 700 {
			return fmt.Errorf("predictor bound must be in (0, 700], got %g", bound)
		}
		cfg.PredictorBound = bound

		return nil
	})
}

// WithConditionLimit sets the condition number above which the information
// matrix is treated as singular.
func WithConditionLimit(limit float64) Option {
	return options.New(func(cfg *FitConfig) error {
		if !(limit > 1) {
			return fmt.Errorf("condition limit must exceed 1, got %g", limit)
		}
		cfg.ConditionLimit = limit

		return nil
	})
}

// WithAcceptNonConverged returns the last iterate instead of an error when the
// optimizer does not converge. Result.Converged is false in that case.
func WithAcceptNonConverged(accept bool) Option {
	return options.NoError(func(cfg *FitConfig) {
		cfg.AcceptNonConverged = accept
	})
}

// WithNames labels the coefficients in column order.
func WithNames(names ...string) Option {
	return options.NoError(func(cfg *FitConfig) {
		cfg.Names = append([]string(nil), names...)
	})
}

// WithInitial sets the optimizer's starting point.
func WithInitial(beta []float64) Option {
	return options.NoError(func(cfg *FitConfig) {
		cfg.Initial = append([]float64(nil), beta...)
	})
}

// WithLogger sets the logger used for fit diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(cfg *FitConfig) {
		if logger == nil {
			logger = zap.NewNop()
		}
		cfg.Logger = logger
	})
}
