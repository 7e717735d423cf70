package poisson

import (
	"errors"
	"fmt"

	"github.com/arloliu/countfit/errs"
)

// InputError reports which validation check rejected the inputs of a fit.
// It matches errs.ErrInvalidInput.
type InputError struct {
	// Check names the failed check, e.g. "dimensions" or "negative count".
	Check string
	// Detail describes the offending value.
	Detail string
}

func (e *InputError) Error() string {
	if e == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s: %s: %s", errs.ErrInvalidInput, e.Check, e.Detail)
}

func (e *InputError) Unwrap() error {
	return errs.ErrInvalidInput
}

func inputErrorf(check, format string, args ...any) *InputError {
	return &InputError{Check: check, Detail: fmt.Sprintf(format, args...)}
}

// ConvergenceError reports that the optimizer stopped before meeting its
// convergence criteria. It matches errs.ErrNotConverged.
type ConvergenceError struct {
	// Status is the optimizer termination status.
	Status string
	// Iterations is the number of major iterations performed.
	Iterations int
	// GradientNorm is the max-norm of the log-likelihood gradient at the last iterate.
	GradientNorm float64
	// Err is the optimizer error, if it reported one.
	Err error
}

func (e *ConvergenceError) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("%s: status=%s iterations=%d gradient=%.3g",
		errs.ErrNotConverged, e.Status, e.Iterations, e.GradientNorm)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}

	return msg
}

func (e *ConvergenceError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

func (e *ConvergenceError) Is(target error) bool {
	return target == errs.ErrNotConverged
}

// IsConvergenceError reports whether err is, or wraps, a *ConvergenceError.
func IsConvergenceError(err error) bool {
	var ce *ConvergenceError
	return errors.As(err, &ce)
}
