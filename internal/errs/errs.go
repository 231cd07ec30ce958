// Package errs defines the shared error taxonomy for fdrscan's compiler
// and driver: a small set of sentinel errors plus a wrapping type that
// attaches context, mirroring the coregex NFA package's error shape
// (sentinel vars + a *CompileError wrapper with Unwrap).
package errs

import (
	"errors"
	"fmt"
)

// Compile-time sentinel errors. Callers distinguish failure modes with
// errors.Is rather than string matching.
var (
	// ErrPatternTooLong indicates a pattern longer than 8 bytes reached
	// Compile; the driver is expected to filter these out first.
	ErrPatternTooLong = errors.New("fdr: pattern longer than 8 bytes")

	// ErrEmptyPattern indicates a zero-length pattern reached Compile. A
	// zero-length pattern has no bucket length and nothing to match, so
	// it is rejected rather than silently assigned an arbitrary bucket.
	ErrEmptyPattern = errors.New("fdr: pattern is empty")

	// ErrNoPatterns indicates Compile was called with zero patterns.
	ErrNoPatterns = errors.New("fdr: no patterns to compile")

	// ErrStrategyMismatch indicates the Uniform bucket strategy was
	// requested with patterns of more than one length.
	ErrStrategyMismatch = errors.New("fdr: uniform strategy requires patterns of one length")

	// ErrInternalInvariant indicates a must-not-happen assertion failed
	// (e.g. a negative start offset computed during verification). It
	// signals a coding defect, not a user error.
	ErrInternalInvariant = errors.New("fdr: internal invariant violated")
)

// CompileError wraps a compile-time failure with the offending pattern
// and its index, so a diagnostic can name exactly what was rejected.
type CompileError struct {
	// Pattern is the offending pattern bytes, or nil if the error is not
	// attributable to one specific pattern (e.g. ErrNoPatterns).
	Pattern []byte

	// Index is the offending pattern's position in the input list, or -1
	// if not applicable.
	Index int

	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern != nil {
		return fmt.Sprintf("fdr: compile failed for pattern %q (index %d): %v", e.Pattern, e.Index, e.Err)
	}
	return fmt.Sprintf("fdr: compile failed: %v", e.Err)
}

// Unwrap returns the underlying sentinel error for errors.Is/As.
func (e *CompileError) Unwrap() error {
	return e.Err
}
