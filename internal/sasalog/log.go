// Package sasalog defines the log sink the SASA core writes warnings
// to. The core never decides how a warning is displayed; it only knows
// it has one to emit (spec.md §7: "Warnings ... are emitted through the
// collaborator-supplied log channel and never abort the computation.").
package sasalog

import "log"

// Sink receives warnings from the engine. Calc emits them from its own
// goroutine before the workers start; the workers do not warn.
type Sink interface {
	Warnf(format string, args ...any)
}

// Standard adapts the standard library's log package, the same way the
// teacher's cmd/ binaries report problems (log.Printf/log.Fatalf).
type Standard struct{}

// Warnf implements Sink.
func (Standard) Warnf(format string, args ...any) {
	log.Printf("warning: "+format, args...)
}

// Discard drops every warning. Useful for library callers and for
// property tests that assert on Result alone.
type Discard struct{}

// Warnf implements Sink.
func (Discard) Warnf(format string, args ...any) {}

// Default is the sink used when a caller passes a nil Sink to Calc.
var Default Sink = Standard{}
