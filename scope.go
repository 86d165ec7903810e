package scoped

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/scoped/errors"
)

// Scope owns the pending deregistrations created through Register and
// guarantees they all complete no later than its own teardown. Scopes are
// created by the entry points (Enter, EnterContext, EnterAsync) and must
// not be used after the entry point returns.
type Scope struct {
	id        uuid.UUID
	log       *zap.Logger
	created   time.Time
	registry  []*finalizer
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	shared    bool
	closed    bool
}

func newScope(opts ...Option) *Scope {
	s := &Scope{
		id:      uuid.New(),
		log:     Logger(),
		created: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("scope entered", zap.String("scope", s.id.String()))
	return s
}

// ID returns the scope's unique identifier, as reported in lifecycle
// events and log fields.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Len returns the number of registrations not yet deregistered.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.registry {
		if !f.forced() {
			n++
		}
	}
	return n
}

// add appends a finalizer to the registry. If the scope was torn down in
// the meantime the finalizer is forced immediately so the external
// registration cannot leak, and the misuse is raised.
func (s *Scope) add(f *finalizer) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		f.force()
		panic(errors.ScopeClosed(s.id.String()))
	}
	s.registry = append(s.registry, f)
	s.mu.Unlock()
}

func (s *Scope) checkOpen() {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		panic(errors.ScopeClosed(s.id.String()))
	}
}

// teardown forces every finalizer not already forced, newest first.
// Reverse order matches conventional nested-resource release. Teardown is
// idempotent; the entry points invoke it on every exit path.
func (s *Scope) teardown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	registry := s.registry
	s.registry = nil
	s.mu.Unlock()

	for i := len(registry) - 1; i >= 0; i-- {
		registry[i].force()
	}

	lifetime := time.Since(s.created)
	s.log.Debug("scope torn down",
		zap.String("scope", s.id.String()),
		zap.Int("registrations", len(registry)),
		zap.Duration("lifetime", lifetime))

	s.notify(Event{Type: EventScopeEnd, Scope: s.id})

	if ins := getInstruments(); ins != nil {
		ins.scopeEnded(context.Background(), lifetime)
	}
}

// Enter runs body with a fresh scope and tears the scope down when body
// returns. Teardown also runs when body panics; the panic then continues
// to propagate unchanged.
func Enter[R any](body func(*Scope) R, opts ...Option) R {
	s := newScope(opts...)
	defer s.teardown()
	return body(s)
}

// EnterContext runs body with a fresh scope on the calling goroutine.
// The body may block or wait on ctx for as long as it needs; the scope
// stays alive until body returns, then teardown runs on every exit path.
//
// Registrations made before a blocking wait remain valid across it. For a
// body that must run on its own goroutine, use EnterAsync instead.
func EnterContext[R any](ctx context.Context, body func(context.Context, *Scope) (R, error), opts ...Option) (R, error) {
	s := newScope(opts...)
	defer s.teardown()
	return body(ctx, s)
}
