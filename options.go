package scoped

import (
	"go.uber.org/zap"
)

// Option configures a scope at entry time.
type Option func(*Scope)

// WithShared makes the scope's guard slots safe for trampolines invoked
// from goroutines other than the one that tears the scope down. Use it
// when the external register API hands the trampoline to a worker pool.
// An invocation racing a deregistration then either runs the callback
// to completion before the deregistration finishes, or observes the
// cleared slot and fails loudly; it never partially executes and is
// never still running once deregistration has completed.
//
// Because the callback runs under the slot's guard in this mode, it must
// not close its own registration from within its own invocation.
//
// EnterAsync applies this option automatically.
func WithShared() Option {
	return func(s *Scope) {
		s.shared = true
	}
}

// WithLogger overrides the library logger for this scope.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scope) {
		if l != nil {
			s.log = l
		}
	}
}

// WithObserver subscribes o before the scope body runs, so it sees every
// lifecycle event including the first registration.
func WithObserver(o Observer) Option {
	return func(s *Scope) {
		if o != nil {
			s.Subscribe(o)
		}
	}
}
