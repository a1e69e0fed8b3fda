// Package errors provides structured error types for the winres library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the resource coordinate involved, a detail message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseFind, errors.KindNotFound).
//		Resource("STRING", "GREETING", "en-US").
//		Detail("no matching entry").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseFind, "STRING", "GREETING", "")
//	err := errors.InvalidHandle(errors.PhaseLoad, h)
//
// Callers test for an error kind regardless of phase with the sentinels:
//
//	if errors.Is(err, errors.ErrNotFound) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
