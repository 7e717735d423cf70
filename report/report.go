// Package report turns a fitted Poisson model into a self-contained run
// report and renders it as a terminal table, JSON or msgpack.
//
// Undefined quantities (standard errors of a singular fit, and the z and p
// values derived from them) are stored as nil pointers so every format can
// represent them.
package report

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/countfit/internal/options"
	"github.com/arloliu/countfit/poisson"
)

// Coefficient is one row of the coefficient table.
type Coefficient struct {
	Name     string   `json:"name" msgpack:"name"`
	Estimate float64  `json:"estimate" msgpack:"estimate"`
	StdErr   *float64 `json:"std_err" msgpack:"std_err"`
	Z        *float64 `json:"z" msgpack:"z"`
	P        *float64 `json:"p" msgpack:"p"`
	// RateRatio is exp(Estimate), the multiplicative effect on the rate.
	RateRatio float64 `json:"rate_ratio" msgpack:"rate_ratio"`
}

// Contrast is a counterfactual comparison of one design column.
type Contrast struct {
	Term        string  `json:"term" msgpack:"term"`
	Base        float64 `json:"base" msgpack:"base"`
	Treated     float64 `json:"treated" msgpack:"treated"`
	MeanBase    float64 `json:"mean_base" msgpack:"mean_base"`
	MeanTreated float64 `json:"mean_treated" msgpack:"mean_treated"`
	Difference  float64 `json:"difference" msgpack:"difference"`
	Ratio       float64 `json:"ratio" msgpack:"ratio"`
}

// Report is the serializable summary of one fit.
type Report struct {
	RunID         string        `json:"run_id" msgpack:"run_id"`
	CreatedAt     time.Time     `json:"created_at" msgpack:"created_at"`
	Model         string        `json:"model,omitempty" msgpack:"model,omitempty"`
	Observations  int           `json:"observations" msgpack:"observations"`
	Dropped       int           `json:"dropped_rows" msgpack:"dropped_rows"`
	Method        string        `json:"method" msgpack:"method"`
	Converged     bool          `json:"converged" msgpack:"converged"`
	Status        string        `json:"status" msgpack:"status"`
	Iterations    int           `json:"iterations" msgpack:"iterations"`
	LogLikelihood float64       `json:"log_likelihood" msgpack:"log_likelihood"`
	GradientNorm  float64       `json:"gradient_norm" msgpack:"gradient_norm"`
	Inference     string        `json:"inference" msgpack:"inference"`
	Aliased       []string      `json:"aliased,omitempty" msgpack:"aliased,omitempty"`
	ClippedRows   int           `json:"clipped_rows" msgpack:"clipped_rows"`
	Coefficients  []Coefficient `json:"coefficients" msgpack:"coefficients"`
	Contrast      *Contrast     `json:"contrast,omitempty" msgpack:"contrast,omitempty"`
}

// Option configures New.
type Option = options.Option[*Report]

// WithRunID overrides the generated run ID. A blank ID is rejected.
func WithRunID(id string) Option {
	return options.New(func(r *Report) error {
		if strings.TrimSpace(id) == "" {
			return errors.New("run id must not be blank")
		}
		r.RunID = id

		return nil
	})
}

// WithModel records the model formula.
func WithModel(formula string) Option {
	return options.NoError(func(r *Report) {
		r.Model = formula
	})
}

// WithDropped records how many input rows were removed before fitting.
func WithDropped(n int) Option {
	return options.NoError(func(r *Report) {
		r.Dropped = n
	})
}

// WithCreatedAt overrides the report timestamp.
func WithCreatedAt(t time.Time) Option {
	return options.NoError(func(r *Report) {
		r.CreatedAt = t.UTC()
	})
}

// WithContrast attaches a counterfactual contrast.
func WithContrast(c poisson.Contrast) Option {
	return options.NoError(func(r *Report) {
		r.Contrast = &Contrast{
			Term:        c.Name,
			Base:        c.Base,
			Treated:     c.Treated,
			MeanBase:    c.MeanBase,
			MeanTreated: c.MeanTreated,
			Difference:  c.Difference,
			Ratio:       c.Ratio,
		}
	})
}

// New builds a report from a fit result.
func New(res *poisson.Result, opts ...Option) (*Report, error) {
	r := &Report{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Observations:  res.NumObs,
		Method:        res.Method.String(),
		Converged:     res.Converged,
		Status:        res.Status,
		Iterations:    res.Iterations,
		LogLikelihood: res.LogLikelihood,
		GradientNorm:  res.GradientNorm,
		Inference:     res.InferenceStatus.String(),
		ClippedRows:   res.ClippedRows,
	}

	for _, j := range res.Aliased {
		r.Aliased = append(r.Aliased, res.Names[j])
	}

	for _, c := range res.Table() {
		r.Coefficients = append(r.Coefficients, Coefficient{
			Name:      c.Name,
			Estimate:  c.Estimate,
			StdErr:    defined(c.StdErr),
			Z:         defined(c.Z),
			P:         defined(c.P),
			RateRatio: math.Exp(c.Estimate),
		})
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

func defined(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}
