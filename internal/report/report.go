// Package report accumulates the non-fatal outcome of a conversion run.
package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/notion2hugo/internal/apperr"
)

// Report collects failures and warnings recorded while a run keeps going.
// A zero Report is ready to use. It is owned by a single run and is not safe
// for concurrent use.
type Report struct {
	failures []error
	warnings int
}

// Fail records a non-fatal failure and logs it at error level.
func (r *Report) Fail(logger *slog.Logger, err error) {
	r.failures = append(r.failures, err)
	if logger != nil {
		logger.Error("run failure recorded", slog.String("error", err.Error()))
	}
}

// Warn counts a warning and logs it with the given attributes.
func (r *Report) Warn(logger *slog.Logger, msg string, attrs ...any) {
	r.warnings++
	if logger != nil {
		logger.Warn(msg, attrs...)
	}
}

// Failed reports whether any failure was recorded.
func (r *Report) Failed() bool {
	return len(r.failures) > 0
}

// Failures returns the recorded failures in order.
func (r *Report) Failures() []error {
	return r.failures
}

// Warnings returns the number of warnings recorded.
func (r *Report) Warnings() int {
	return r.warnings
}

// Err returns nil for a clean run, otherwise ErrCompletedWithErrors joined
// with every recorded cause.
func (r *Report) Err() error {
	if !r.Failed() {
		return nil
	}
	return fmt.Errorf("%w: %d failure(s): %w",
		apperr.ErrCompletedWithErrors, len(r.failures), errors.Join(r.failures...))
}
