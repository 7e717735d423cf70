// Package design turns a dataset table into the response vector and named
// design matrix consumed by the poisson estimator.
//
// A Spec lists the response column and the predictor terms: an optional
// intercept, numeric columns used as is, squared numeric columns and
// categorical columns expanded into one indicator column per non-reference
// level. Rows with a missing value in any used column are dropped before the
// matrix is built.
package design

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/countfit/dataset"
	"github.com/arloliu/countfit/errs"
)

// InterceptName is the coefficient name of the intercept column.
const InterceptName = "intercept"

// Categorical is a text (or integer-coded) column expanded into indicators.
type Categorical struct {
	Column string
	// Reference is the level absorbed by the intercept. Empty selects the
	// first level in sorted order.
	Reference string
}

// Spec describes the terms of a model.
type Spec struct {
	Response    string
	Intercept   bool
	Numeric     []string
	Squared     []string
	Categorical []Categorical
}

// Validate checks the spec without looking at any data.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Response) == "" {
		return fmt.Errorf("response column is required")
	}
	if !s.Intercept && len(s.Numeric) == 0 && len(s.Squared) == 0 && len(s.Categorical) == 0 {
		return errs.ErrEmptyDesign
	}

	for _, c := range s.Categorical {
		if c.Column == "" {
			return fmt.Errorf("categorical term without a column")
		}
	}

	return nil
}

// Formula renders the spec in the usual "response ~ terms" notation. A model
// without an intercept ends with "- 1".
func (s Spec) Formula() string {
	terms := make([]string, 0, len(s.Numeric)+len(s.Squared)+len(s.Categorical))
	terms = append(terms, s.Numeric...)
	for _, name := range s.Squared {
		terms = append(terms, name+"^2")
	}
	for _, c := range s.Categorical {
		terms = append(terms, "C("+c.Column+")")
	}

	rhs := strings.Join(terms, " + ")
	switch {
	case rhs == "" && s.Intercept:
		rhs = "1"
	case !s.Intercept:
		rhs += " - 1"
	}

	return s.Response + " ~ " + strings.TrimPrefix(rhs, " ")
}

// columns lists every table column the spec reads, response first.
func (s Spec) columns() []string {
	out := []string{s.Response}
	add := func(name string) {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	for _, c := range s.Numeric {
		add(c)
	}
	for _, c := range s.Squared {
		add(c)
	}
	for _, c := range s.Categorical {
		add(c.Column)
	}

	return out
}

// Term records which design columns a spec term produced.
type Term struct {
	Source    string
	Reference string   // categorical terms only
	Levels    []string // categorical terms only, non-reference levels in column order
	First     int
	Count     int
}

// Matrix is a built design.
type Matrix struct {
	Response []float64
	X        *mat.Dense
	Names    []string
	Terms    []Term
	// Dropped is the number of table rows removed for missing values.
	Dropped int
}

// Index returns the design column of a coefficient name.
func (m *Matrix) Index(name string) (int, bool) {
	i := slices.Index(m.Names, name)
	return i, i >= 0
}

// Build builds the design for spec from t.
func Build(t *dataset.Table, spec Spec) (*Matrix, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	complete, dropped, err := t.CompleteCases(spec.columns()...)
	if err != nil {
		return nil, err
	}
	if complete.Rows() == 0 {
		return nil, fmt.Errorf("%w: no complete rows for %s", errs.ErrEmptyTable, strings.Join(spec.columns(), ", "))
	}

	response, err := complete.Numeric(spec.Response)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	b := &builder{rows: complete.Rows()}
	if spec.Intercept {
		ones := make([]float64, b.rows)
		for i := range ones {
			ones[i] = 1
		}
		b.add(Term{Source: InterceptName}, InterceptName, ones)
	}

	for _, name := range spec.Numeric {
		values, err := complete.Numeric(name)
		if err != nil {
			return nil, err
		}
		b.add(Term{Source: name}, name, values)
	}

	for _, name := range spec.Squared {
		values, err := complete.Numeric(name)
		if err != nil {
			return nil, err
		}
		sq := make([]float64, len(values))
		for i, v := range values {
			sq[i] = v * v
		}
		b.add(Term{Source: name}, name+"^2", sq)
	}

	for _, c := range spec.Categorical {
		if err := b.addCategorical(complete, c); err != nil {
			return nil, err
		}
	}

	if len(b.names) == 0 {
		return nil, fmt.Errorf("%w: every term expanded to zero columns", errs.ErrEmptyDesign)
	}
	if dup := firstDuplicate(b.names); dup != "" {
		return nil, fmt.Errorf("%w: design column %q", errs.ErrDuplicateColumn, dup)
	}

	x := mat.NewDense(b.rows, len(b.names), nil)
	for j, col := range b.cols {
		x.SetCol(j, col)
	}

	return &Matrix{
		Response: slices.Clone(response),
		X:        x,
		Names:    b.names,
		Terms:    b.terms,
		Dropped:  dropped,
	}, nil
}

type builder struct {
	rows  int
	names []string
	cols  [][]float64
	terms []Term
}

func (b *builder) add(term Term, name string, values []float64) {
	term.First = len(b.names)
	term.Count = 1
	b.terms = append(b.terms, term)
	b.names = append(b.names, name)
	b.cols = append(b.cols, values)
}

func (b *builder) addCategorical(t *dataset.Table, c Categorical) error {
	levels, err := dataset.Levels(t, c.Column)
	if err != nil {
		return err
	}
	values, err := t.Text(c.Column)
	if err != nil {
		return err
	}

	reference := c.Reference
	if reference == "" {
		reference = levels[0]
	} else if !slices.Contains(levels, reference) {
		return fmt.Errorf("%w: %q is not a level of %q (levels: %s)",
			errs.ErrUnknownLevel, reference, c.Column, strings.Join(levels, ", "))
	}

	term := Term{Source: c.Column, Reference: reference, First: len(b.names)}
	for _, level := range levels {
		if level == reference {
			continue
		}
		indicator := make([]float64, b.rows)
		for i, v := range values {
			if v == level {
				indicator[i] = 1
			}
		}
		term.Levels = append(term.Levels, level)
		b.names = append(b.names, IndicatorName(c.Column, level))
		b.cols = append(b.cols, indicator)
	}
	term.Count = len(term.Levels)
	b.terms = append(b.terms, term)

	return nil
}

// IndicatorName is the coefficient name of a categorical level indicator.
func IndicatorName(column, level string) string {
	return column + "[" + level + "]"
}

func firstDuplicate(names []string) string {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return n
		}
		seen[n] = struct{}{}
	}

	return ""
}
