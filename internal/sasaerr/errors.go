// Package sasaerr defines the error taxonomy surfaced by the SASA engine.
//
// spec.md ties every failure the core can report back to one of four
// kinds; callers switch on Kind rather than string-matching messages.
package sasaerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a calculation failed.
type Kind int

const (
	// InvalidParameters covers r_p <= 0, n_slices < 1, n_sr_points < 1, n_threads < 1.
	InvalidParameters Kind = iota
	// InvalidInput covers N == 0, a non-positive radius, or a non-finite coordinate.
	InvalidInput
	// MemoryExhausted covers allocation failure in the cell list, neighbor list, or scratch.
	MemoryExhausted
	// WorkerFailed covers an internal invariant violation detected mid-run.
	WorkerFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidParameters:
		return "InvalidParameters"
	case InvalidInput:
		return "InvalidInput"
	case MemoryExhausted:
		return "MemoryExhausted"
	case WorkerFailed:
		return "WorkerFailed"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with a causal chain. It implements Unwrap so that
// errors.Is/errors.As work against the wrapped cause, and carries a
// stack trace captured at the point of construction (via pkg/errors) so
// a CLI can print one in verbose/debug mode without re-wrapping.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given kind from a message, with a stack
// trace attached at this call site.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: errors.New(msg)}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Wrap attaches a Kind to an existing error, preserving it as the cause
// and recording a stack trace at this call site.
func Wrap(kind Kind, err error, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrap(err, msg)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
