// Package config loads countfit model files.
//
// A model file names the response, the predictor terms, optimizer settings,
// an optional contrast and the output format:
//
//	data: visits.csv
//	response: visits
//	numeric: [age]
//	categorical:
//	  - column: arm
//	    reference: placebo
//	fit:
//	  method: lbfgs
//	  max_iterations: 500
//	contrast:
//	  term: arm[treated]
//	output:
//	  format: json
package config

import (
	"go.uber.org/zap"

	"github.com/arloliu/countfit/design"
	"github.com/arloliu/countfit/poisson"
	"github.com/arloliu/countfit/report"
)

// Fit holds optimizer settings. Zero values select the estimator defaults.
type Fit struct {
	Method             poisson.Method
	MaxIterations      int
	GradientTolerance  float64
	PredictorBound     float64
	AcceptNonConverged bool
}

// Contrast names the design column to vary and the two values to compare.
type Contrast struct {
	Term    string
	Base    float64
	Treated float64
}

// Model is a validated model configuration.
type Model struct {
	// Data is the dataset path, resolved relative to the model file.
	Data     string
	Design   design.Spec
	Fit      Fit
	Contrast *Contrast
	Format   report.Format
}

// Options converts the fit settings into estimator options.
func (m *Model) Options(names []string, logger *zap.Logger) []poisson.Option {
	opts := []poisson.Option{
		poisson.WithMethod(m.Fit.Method),
		poisson.WithAcceptNonConverged(m.Fit.AcceptNonConverged),
		poisson.WithNames(names...),
	}
	if m.Fit.MaxIterations > 0 {
		opts = append(opts, poisson.WithMaxIterations(m.Fit.MaxIterations))
	}
	if m.Fit.GradientTolerance > 0 {
		opts = append(opts, poisson.WithGradientTolerance(m.Fit.GradientTolerance))
	}
	if m.Fit.PredictorBound > 0 {
		opts = append(opts, poisson.WithPredictorBound(m.Fit.PredictorBound))
	}
	if logger != nil {
		opts = append(opts, poisson.WithLogger(logger))
	}

	return opts
}
