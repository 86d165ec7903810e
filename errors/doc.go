// Package errors provides structured error types for the scoped library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes the offending scope and registration identifiers and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindInvalidInput).
//		Scope(scopeID).
//		Detail("nil deregister adapter").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.StaleCallback(scopeID, registrationID)
//	err := errors.ScopeClosed(scopeID)
//
// All errors implement the standard error interface and support errors.Is/As.
// Misuse failures (stale callback invocation, registration on a torn-down
// scope) are panics carrying an *Error payload; they are programming errors
// and are never recovered by the library itself.
package errors
