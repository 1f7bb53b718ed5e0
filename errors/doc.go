// Package errors provides structured error types for the ownership library.
//
// Errors are categorized by Phase (which kind of operation was running) and
// Kind (what went wrong). The Error type carries the owner type name, the
// identity of the resource involved, and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindNullAccess).
//		Owner("unique").
//		Detail("dereference of empty owner").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullAccess("unique")
//	err := errors.DoubleRelease(7)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
