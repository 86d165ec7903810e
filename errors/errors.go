package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the registration lifecycle the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // wiring a callback into a scope
	PhaseInvoke   Phase = "invoke"   // trampoline invocation
	PhaseTeardown Phase = "teardown" // scope teardown
	PhaseAsync    Phase = "async"    // asynchronous entry point
)

// Kind categorizes the error
type Kind string

const (
	KindStaleCallback Kind = "stale_callback" // trampoline invoked after deregistration
	KindScopeClosed   Kind = "scope_closed"   // registration attempted on a torn-down scope
	KindInvalidInput  Kind = "invalid_input"
	KindBodyPanic     Kind = "body_panic"
)

// Error is the structured error type used throughout the library.
// Misuse failures panic with an *Error payload rather than returning it.
type Error struct {
	Cause        error
	Phase        Phase
	Kind         Kind
	Scope        string
	Registration string
	Detail       string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Scope != "" {
		b.WriteString(" scope ")
		b.WriteString(e.Scope)
	}
	if e.Registration != "" {
		b.WriteString(" registration ")
		b.WriteString(e.Registration)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Scope sets the scope identifier
func (b *Builder) Scope(id string) *Builder {
	b.err.Scope = id
	return b
}

// Registration sets the registration identifier
func (b *Builder) Registration(id string) *Builder {
	b.err.Registration = id
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// StaleCallback creates the misuse error raised when a bridged callback
// is invoked after its registration has been torn down.
func StaleCallback(scope, registration string) *Error {
	return &Error{
		Phase:        PhaseInvoke,
		Kind:         KindStaleCallback,
		Scope:        scope,
		Registration: registration,
		Detail:       "callback invoked after deregistration",
	}
}

// ScopeClosed creates the misuse error raised when a registration is
// attempted on a scope that has already been torn down.
func ScopeClosed(scope string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindScopeClosed,
		Scope:  scope,
		Detail: "scope already torn down",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// BodyPanic wraps a panic value recovered from a scope body, keeping the
// stack captured at the panic site.
func BodyPanic(scope string, value any, stack []byte) *Error {
	return &Error{
		Phase:  PhaseAsync,
		Kind:   KindBodyPanic,
		Scope:  scope,
		Detail: fmt.Sprintf("scope body panicked: %v\n%s", value, stack),
	}
}
