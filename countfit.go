// Package countfit fits Poisson regression models to count data by maximum
// likelihood.
//
// The estimator itself lives in the poisson package and works on a count
// vector and a gonum design matrix. This package wires it to the supporting
// packages for the common case of fitting a model straight from tabular data.
//
// # Core Features
//
//   - Log-link Poisson regression fitted with BFGS or L-BFGS and an analytic gradient
//   - Standard errors from the inverse observed information, explicitly undefined when singular
//   - Overflow guard on the linear predictor with a clipped-row count
//   - Design matrices with intercept, numeric, squared and one-hot categorical terms
//   - CSV loading and compressed, checksummed binary snapshots (None, Zstd, S2, LZ4)
//   - Counterfactual predictions and indicator contrasts
//
// # Basic Usage
//
// Fitting a model from CSV:
//
//	import "github.com/arloliu/countfit"
//
//	spec := design.Spec{
//	    Response:    "visits",
//	    Intercept:   true,
//	    Numeric:     []string{"age"},
//	    Categorical: []design.Categorical{{Column: "arm", Reference: "placebo"}},
//	}
//	res, mx, err := countfit.FitCSV(file, spec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range res.Table() {
//	    fmt.Printf("%s %.4f (%.4f)\n", c.Name, c.Estimate, c.StdErr)
//	}
//
// Storing a dataset as a snapshot and reading it back:
//
//	data, _ := countfit.EncodeSnapshot(tbl)
//	tbl, _ = countfit.DecodeSnapshot(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the poisson, design, dataset and report packages directly.
package countfit

import (
	"fmt"
	"io"

	"github.com/arloliu/countfit/dataset"
	"github.com/arloliu/countfit/design"
	"github.com/arloliu/countfit/format"
	"github.com/arloliu/countfit/internal/hash"
	"github.com/arloliu/countfit/poisson"
)

// FitTable builds the design described by spec from t and fits it.
//
// Coefficients are named after the design columns ("intercept", "age",
// "age^2", "arm[treated]"); a poisson.WithNames option in opts overrides them.
// Rows with a missing value in any used column are dropped; the returned
// design reports how many.
//
// Parameters:
//   - t: Source table
//   - spec: Response and predictor terms
//   - opts: Estimator options such as poisson.WithMethod or poisson.WithLogger
//
// Returns:
//   - *poisson.Result: The fit
//   - *design.Matrix: The design that was fitted, for Predict and Contrast
//   - error: Design errors, poisson.InputError or poisson.ConvergenceError
func FitTable(t *dataset.Table, spec design.Spec, opts ...poisson.Option) (*poisson.Result, *design.Matrix, error) {
	mx, err := design.Build(t, spec)
	if err != nil {
		return nil, nil, err
	}

	all := make([]poisson.Option, 0, len(opts)+1)
	all = append(all, poisson.WithNames(mx.Names...))
	all = append(all, opts...)

	res, err := poisson.Fit(mx.Response, mx.X, all...)
	if err != nil {
		return nil, mx, fmt.Errorf("fit %s: %w", spec.Formula(), err)
	}

	return res, mx, nil
}

// FitCSV reads a CSV table with a header row from r and fits spec to it.
//
// Example:
//
//	f, _ := os.Open("visits.csv")
//	defer f.Close()
//	res, _, err := countfit.FitCSV(f, spec, poisson.WithMethod(poisson.MethodLBFGS))
func FitCSV(r io.Reader, spec design.Spec, opts ...poisson.Option) (*poisson.Result, *design.Matrix, error) {
	t, err := dataset.ReadCSV(r)
	if err != nil {
		return nil, nil, err
	}

	return FitTable(t, spec, opts...)
}

// EncodeSnapshot encodes t as a zstd-compressed snapshot.
//
// Use dataset.Encode with dataset.WithCompression to pick another codec.
func EncodeSnapshot(t *dataset.Table) ([]byte, error) {
	return dataset.Encode(t, dataset.WithCompression(format.CompressionZstd))
}

// DecodeSnapshot decodes a snapshot produced by EncodeSnapshot or dataset.Encode.
func DecodeSnapshot(data []byte) (*dataset.Table, error) {
	return dataset.Decode(data)
}

// ColumnID returns the 64-bit identifier a snapshot index stores for a column
// name (xxHash64 of the name).
func ColumnID(name string) uint64 {
	return hash.ColumnID(name)
}
