// Package errs defines the sentinel errors shared by countfit packages.
//
// Callers classify failures with errors.Is; the concrete error types in the
// poisson, dataset and design packages wrap these sentinels and carry the
// details needed to diagnose which check failed.
package errs

import "errors"

// Estimation errors.
var (
	// ErrInvalidInput is returned when counts or the design matrix fail validation
	// before optimization starts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConverged is returned when the optimizer stops without meeting its
	// convergence criteria.
	ErrNotConverged = errors.New("optimizer did not converge")
	// ErrSingularInformation marks a fit whose observed-information matrix cannot be
	// inverted, so standard errors are undefined.
	ErrSingularInformation = errors.New("observed information matrix is singular")
	// ErrDimensionMismatch is returned when a prediction matrix does not match the
	// fitted coefficient count.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Dataset and design errors.
var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrColumnKind       = errors.New("column has the wrong kind")
	ErrDuplicateColumn  = errors.New("duplicate column")
	ErrRaggedRow        = errors.New("row has an unexpected number of fields")
	ErrEmptyTable       = errors.New("table has no rows")
	ErrEmptyDesign      = errors.New("design has no columns")
	ErrUnknownLevel     = errors.New("unknown categorical level")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)

// ErrInvalidConfig is returned when a model configuration file fails validation.
var ErrInvalidConfig = errors.New("invalid config")
