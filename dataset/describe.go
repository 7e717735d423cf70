package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the non-missing values of a numeric column.
type Summary struct {
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Summarize computes a Summary over values, skipping NaN. All statistics are
// NaN when no value is present; Variance is NaN with fewer than two values.
func Summarize(values []float64) Summary {
	present := dropNaN(values)
	s := Summary{Count: len(present), Missing: len(values) - len(present)}
	if len(present) == 0 {
		s.Mean, s.Variance, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}

	s.Mean, s.Variance = stat.MeanVariance(present, nil)
	if len(present) < 2 {
		s.Variance = math.NaN()
	}
	s.Min = floats.Min(present)
	s.Max = floats.Max(present)

	return s
}

// Group is the summary of a value column within one level of a grouping column.
type Group struct {
	Level string `json:"level"`
	Summary
}

// GroupMeans summarizes the numeric column value within each level of the by
// column. Rows with a missing level are skipped. Groups are ordered by level.
func GroupMeans(t *Table, value, by string) ([]Group, error) {
	values, err := t.Numeric(value)
	if err != nil {
		return nil, err
	}
	levels, err := t.Text(by)
	if err != nil {
		return nil, err
	}

	byLevel := make(map[string][]float64)
	for i, level := range levels {
		if level == "" {
			continue
		}
		byLevel[level] = append(byLevel[level], values[i])
	}

	keys := make([]string, 0, len(byLevel))
	for level := range byLevel {
		keys = append(keys, level)
	}
	slices.SortFunc(keys, compareLevels)

	out := make([]Group, len(keys))
	for i, level := range keys {
		out[i] = Group{Level: level, Summary: Summarize(byLevel[level])}
	}

	return out, nil
}

// Levels returns the distinct non-missing values of a column, ordered the same
// way GroupMeans orders its groups.
func Levels(t *Table, column string) ([]string, error) {
	values, err := t.Text(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	slices.SortFunc(out, compareLevels)

	return out, nil
}

// compareLevels orders numeric-looking levels numerically and everything else
// lexically, numbers first.
func compareLevels(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil && fa != fb:
		if fa < fb {
			return -1
		}
		return 1
	case errA == nil && errB != nil:
		return -1
	case errA != nil && errB == nil:
		return 1
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Bin is one histogram bucket covering [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets the non-missing values. With bins > 0 the range
// [min, max+1) is split into that many equal-width buckets; with bins == 0
// every bucket is one unit wide, which for count data gives one bucket per
// observed count value. An empty input yields no buckets.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if bins < 0 {
		return nil, fmt.Errorf("bins must be non-negative, got %d", bins)
	}

	present := dropNaN(values)
	if len(present) == 0 {
		return nil, nil
	}
	slices.Sort(present)

	lo := math.Floor(present[0])
	hi := math.Floor(present[len(present)-1]) + 1
	if hi <= present[len(present)-1] {
		hi = math.Nextafter(present[len(present)-1], math.Inf(1))
	}
	if bins == 0 {
		if width := hi - lo; width > maxUnitBins {
			return nil, fmt.Errorf("range %g..%g needs %g unit bins, pass an explicit bin count", lo, hi-1, math.Ceil(width))
		}
		bins = int(math.Ceil(hi - lo))
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	dividers[bins] = hi
	counts := stat.Histogram(nil, dividers, present, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}

	return out, nil
}

const maxUnitBins = 10000

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	return out
}
