package store

import "github.com/pkg/errors"

// ErrNotFound signals that an id did not resolve to a row.
var ErrNotFound = errors.New("not found")

// ValidationError marks input rejected before any transaction was opened.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// RecordingError wraps the cause of a rolled back write transaction. The
// caller must not retry: submissions are not idempotent and a retry of a
// half-failed one would not be either.
type RecordingError struct {
	Err error
}

func (e *RecordingError) Error() string {
	return "recording failed: " + e.Err.Error()
}

func (e *RecordingError) Unwrap() error {
	return e.Err
}
