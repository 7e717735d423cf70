package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/countfit/design"
	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/poisson"
	"github.com/arloliu/countfit/report"
)

// MapModel validates a decoded model file. path is used to resolve a relative
// data path and in error messages; it may be empty.
func MapModel(path string, ym YAMLModel) (*Model, error) {
	if strings.TrimSpace(ym.Response) == "" {
		return nil, invalidField(path, "response", "response column is required")
	}

	m := &Model{
		Data: resolveData(path, ym.Data),
		Design: design.Spec{
			Response:  strings.TrimSpace(ym.Response),
			Intercept: ym.Intercept == nil || *ym.Intercept,
			Numeric:   trimAll(ym.Numeric),
			Squared:   trimAll(ym.Squared),
		},
		Fit: Fit{AcceptNonConverged: ym.Fit.AcceptNonConverged},
	}

	for i, c := range ym.Categorical {
		if strings.TrimSpace(c.Column) == "" {
			return nil, invalidField(path, fmt.Sprintf("categorical[%d].column", i), "column is required")
		}
		m.Design.Categorical = append(m.Design.Categorical, design.Categorical{
			Column:    strings.TrimSpace(c.Column),
			Reference: strings.TrimSpace(c.Reference),
		})
	}
	if err := m.Design.Validate(); err != nil {
		return nil, invalidField(path, "terms", err.Error())
	}

	if ym.Fit.Method != "" {
		method, err := poisson.ParseMethod(ym.Fit.Method)
		if err != nil {
			return nil, invalidField(path, "fit.method", err.Error())
		}
		m.Fit.Method = method
	}
	if v := ym.Fit.MaxIterations; v != nil {
		if *v <= 0 {
			return nil, invalidField(path, "fit.max_iterations", "must be positive")
		}
		m.Fit.MaxIterations = *v
	}
	if v := ym.Fit.GradientTolerance; v != nil {
		if *v <= 0 {
			return nil, invalidField(path, "fit.gradient_tolerance", "must be positive")
		}
		m.Fit.GradientTolerance = *v
	}
	if v := ym.Fit.PredictorBound; v != nil {
		if *v <= 0 || *v > 700 {
			return nil, invalidField(path, "fit.predictor_bound", "must be in (0, 700]")
		}
		m.Fit.PredictorBound = *v
	}

	if c := ym.Contrast; c != nil {
		if strings.TrimSpace(c.Term) == "" {
			return nil, invalidField(path, "contrast.term", "term is required")
		}
		m.Contrast = &Contrast{Term: strings.TrimSpace(c.Term), Base: 0, Treated: 1}
		if c.Base != nil {
			m.Contrast.Base = *c.Base
		}
		if c.Treated != nil {
			m.Contrast.Treated = *c.Treated
		}
		if m.Contrast.Base == m.Contrast.Treated {
			return nil, invalidField(path, "contrast", "base and treated values must differ")
		}
	}

	format, err := report.ParseFormat(ym.Output.Format)
	if err != nil {
		return nil, invalidField(path, "output.format", err.Error())
	}
	m.Format = format

	return m, nil
}

func resolveData(modelPath, data string) string {
	data = strings.TrimSpace(data)
	if data == "" || filepath.IsAbs(data) || modelPath == "" {
		return data
	}

	return filepath.Join(filepath.Dir(modelPath), data)
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

func invalidField(path, field, msg string) error {
	if path == "" {
		return fmt.Errorf("field %s: %s: %w", field, msg, errs.ErrInvalidConfig)
	}

	return fmt.Errorf("%s: field %s: %s: %w", path, field, msg, errs.ErrInvalidConfig)
}
