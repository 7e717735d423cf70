package poisson

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/arloliu/countfit/internal/options"
)

// Fit estimates the coefficients of a Poisson regression of counts y on the
// design matrix x by maximum likelihood.
//
// y must hold non-negative integral values, one per row of x, and x must have
// no more columns than rows. The first column is conventionally an intercept.
//
// Returns:
//   - *Result: the estimate with standard errors, or nil on error
//   - error: *InputError for invalid inputs, *ConvergenceError when the
//     optimizer does not converge (unless WithAcceptNonConverged is set), or an
//     option error
//
// A singular information matrix is not an error: the result carries
// InferenceSingular and NaN standard errors.
func Fit(y []float64, x mat.Matrix, opts ...Option) (*Result, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	n, p, err := validate(y, x)
	if err != nil {
		return nil, err
	}

	names, err := coefficientNames(cfg.Names, p)
	if err != nil {
		return nil, err
	}

	init := make([]float64, p)
	if cfg.Initial != nil {
		if len(cfg.Initial) != p {
			return nil, inputErrorf("initial", "starting point has %d values, design has %d columns", len(cfg.Initial), p)
		}
		copy(init, cfg.Initial)
	}

	dense := asDense(x)
	obj := &objective{y: y, x: dense, bound: cfg.PredictorBound, scale: 1 / float64(n)}

	logger := cfg.Logger.With(zap.String("method", cfg.Method.String()), zap.Int("n", n), zap.Int("p", p))
	logger.Debug("poisson fit started")

	settings := &optimize.Settings{
		GradientThreshold: cfg.GradientTolerance,
		MajorIterations:   cfg.MaxIterations,
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		settings.Recorder = &zapRecorder{logger: logger}
	}

	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}

	opt, optErr := optimize.Minimize(problem, init, settings, newMethod(cfg.Method))
	if opt == nil {
		return nil, &ConvergenceError{Status: optimize.Failure.String(), Err: optErr}
	}

	beta := append([]float64(nil), opt.X...)
	grad := make([]float64, p)
	k, clipped := kernel(beta, y, dense, cfg.PredictorBound, grad)
	gradNorm := floats.Norm(grad, math.Inf(1)) / float64(n)

	converged := optErr == nil && convergedStatus(opt.Status)
	if !converged {
		cerr := &ConvergenceError{
			Status:       opt.Status.String(),
			Iterations:   opt.MajorIterations,
			GradientNorm: gradNorm,
			Err:          optErr,
		}
		if !cfg.AcceptNonConverged {
			logger.Debug("poisson fit failed", zap.Error(cerr))
			return nil, cerr
		}
		logger.Warn("returning non-converged estimate", zap.Error(cerr))
	}

	inf := deriveInference(information(beta, dense, cfg.PredictorBound), cfg.ConditionLimit)
	if inf.status != InferenceOK {
		logger.Warn("standard errors undefined", zap.Error(inf.err), zap.Ints("aliased", inf.aliased))
	}
	if clipped > 0 {
		logger.Warn("linear predictor outside overflow guard at estimate", zap.Int("rows", clipped))
	}

	res := &Result{
		Names:           names,
		Coefficients:    beta,
		StdErrors:       inf.stdErrors,
		Covariance:      inf.covariance,
		LogLikelihood:   k - logFactorialSum(y),
		Converged:       converged,
		Status:          opt.Status.String(),
		Method:          cfg.Method,
		Iterations:      opt.MajorIterations,
		FuncEvaluations: opt.FuncEvaluations,
		GradEvaluations: opt.GradEvaluations,
		GradientNorm:    gradNorm,
		InferenceStatus: inf.status,
		InferenceErr:    inf.err,
		Aliased:         inf.aliased,
		ConditionNumber: inf.cond,
		ClippedRows:     clipped,
		NumObs:          n,
	}

	logger.Debug("poisson fit finished",
		zap.String("status", res.Status),
		zap.Int("iterations", res.Iterations),
		zap.Float64("loglik", res.LogLikelihood),
	)

	return res, nil
}

// FitCounts is Fit for integer counts.
func FitCounts(y []int, x mat.Matrix, opts ...Option) (*Result, error) {
	yf := make([]float64, len(y))
	for i, v := range y {
		yf[i] = float64(v)
	}

	return Fit(yf, x, opts...)
}

// objective is the per-observation negative log-likelihood kernel minimized
// by the optimizer. The logΓ(y+1) term is constant in β and omitted.
type objective struct {
	y     []float64
	x     *mat.Dense
	bound float64
	scale float64
}

func (o *objective) value(beta []float64) float64 {
	k, _ := kernel(beta, o.y, o.x, o.bound, nil)
	return -k * o.scale
}

func (o *objective) gradient(grad, beta []float64) {
	kernel(beta, o.y, o.x, o.bound, grad)
	floats.Scale(-o.scale, grad)
}

func newMethod(m Method) optimize.Method {
	switch m {
	case MethodLBFGS:
		return &optimize.LBFGS{}
	default:
		return &optimize.BFGS{}
	}
}

// convergedStatus reports whether an optimizer status denotes convergence
// rather than an exhausted budget or a failure.
func convergedStatus(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.GradientThreshold,
		optimize.FunctionConvergence,
		optimize.FunctionThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}

// validate checks counts and design before optimization.
func validate(y []float64, x mat.Matrix) (n, p int, err error) {
	if x == nil {
		return 0, 0, inputErrorf("empty", "design matrix is nil")
	}
	rows, cols := x.Dims()
	n = len(y)

	switch {
	case n == 0:
		return 0, 0, inputErrorf("empty", "no observations")
	case cols == 0:
		return 0, 0, inputErrorf("empty", "design matrix has no columns")
	case rows != n:
		return 0, 0, inputErrorf("dimensions", "%d counts but design matrix has %d rows", n, rows)
	case n < cols:
		return 0, 0, inputErrorf("underdetermined", "%d observations for %d coefficients", n, cols)
	}

	for i, v := range y {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return 0, 0, inputErrorf("non-finite", "count %d is %g", i, v)
		case v < 0:
			return 0, 0, inputErrorf("negative count", "count %d is %g", i, v)
		case v != math.Trunc(v):
			return 0, 0, inputErrorf("non-integer count", "count %d is %g", i, v)
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := x.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, inputErrorf("non-finite", "design value at row %d column %d is %g", i, j, v)
			}
		}
	}

	return n, cols, nil
}

func coefficientNames(names []string, p int) ([]string, error) {
	if names == nil {
		out := make([]string, p)
		for j := range out {
			out[j] = fmt.Sprintf("x%d", j)
		}

		return out, nil
	}
	if len(names) != p {
		return nil, inputErrorf("names", "%d names for %d columns", len(names), p)
	}

	return append([]string(nil), names...), nil
}

// zapRecorder logs each major optimizer iteration at debug level.
type zapRecorder struct {
	logger *zap.Logger
}

var _ optimize.Recorder = (*zapRecorder)(nil)

func (r *zapRecorder) Init() error {
	return nil
}

func (r *zapRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&optimize.MajorIteration == 0 {
		return nil
	}

	fields := []zap.Field{
		zap.Int("iteration", stats.MajorIterations),
		zap.Float64("objective", loc.F),
	}
	if loc.Gradient != nil {
		fields = append(fields, zap.Float64("gradient", floats.Norm(loc.Gradient, math.Inf(1))))
	}
	r.logger.Debug("optimizer iteration", fields...)

	return nil
}
