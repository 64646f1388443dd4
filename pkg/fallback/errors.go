package fallback

import (
	"errors"
	"fmt"
	"strings"
)

// FatalError aborts the fallback chain immediately. Attempts wrap an error
// in it only for conditions no other candidate could fix, such as invalid
// input or a broken output path. Every other failure is recoverable and
// the executor simply moves on to the next candidate.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err so the executor stops the chain instead of falling
// through. Wrapping nil returns nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// Fatalf is Fatal over a formatted error.
func Fatalf(format string, args ...any) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

// IsFatal reports whether err (or anything it wraps) is a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// AttemptFailure records one failed candidate for the exhaustion report.
type AttemptFailure struct {
	Candidate Candidate
	Err       error
}

// ExhaustedError is returned when every candidate was skipped or failed
// recoverably. It lists each failure so the user sees the whole chain, not
// just the last straw, plus any config hints from the skipped providers.
type ExhaustedError struct {
	Capability Capability
	Failures   []AttemptFailure
	Skipped    []string // providers gated out on missing credentials
	Hints      []string
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: all providers exhausted", e.Capability)
	if len(e.Failures) == 0 && len(e.Skipped) > 0 {
		fmt.Fprintf(&b, ", none attempted (no usable credentials for %s)", strings.Join(e.Skipped, ", "))
	}
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %v", f.Candidate, f.Err)
	}
	if len(e.Hints) > 0 {
		fmt.Fprintf(&b, " (check %s)", strings.Join(e.Hints, ", "))
	}
	return b.String()
}
