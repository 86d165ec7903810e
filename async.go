package scoped

import (
	"context"
	"runtime/debug"

	"github.com/wippyai/scoped/errors"
)

// Future is the pending result of EnterAsync.
type Future[R any] struct {
	done     chan struct{}
	value    R
	err      error
	scope    string
	panicked any
	stack    []byte
}

// Done returns a channel closed when the scope body has finished and the
// scope has been torn down.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the scope body finishes and returns its result. If
// the body panicked, Wait re-raises the panic as a *errors.Error
// (errors.KindBodyPanic) carrying the original value and the stack
// captured at the panic site.
func (f *Future[R]) Wait() (R, error) {
	<-f.done
	if f.panicked != nil {
		panic(errors.BodyPanic(f.scope, f.panicked, f.stack))
	}
	return f.value, f.err
}

// EnterAsync runs body with a fresh scope on its own goroutine and
// returns immediately. The scope stays alive for the body's entire
// duration, across any number of blocking waits, and is torn down when
// body returns or panics. The returned Future resolves after teardown
// completes, so by the time Wait returns every registration made inside
// the scope has been deregistered.
//
// Because body runs on another goroutine, the scope's guard slots are
// always the shared (mutex-backed) variant.
func EnterAsync[R any](ctx context.Context, body func(context.Context, *Scope) (R, error), opts ...Option) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.panicked = r
				f.stack = debug.Stack()
			}
		}()

		s := newScope(opts...)
		s.shared = true
		f.scope = s.id.String()
		defer s.teardown()

		f.value, f.err = body(ctx, s)
	}()

	return f
}
