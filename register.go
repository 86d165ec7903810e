package scoped

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/scoped/errors"
	"github.com/wippyai/scoped/guard"
)

// Registration is the caller-visible token for one active registration.
// Closing it deregisters the callback immediately. A Registration that is
// never closed is deregistered at scope teardown instead; either way the
// deregister adapter runs exactly once.
type Registration struct {
	fin *finalizer
	id  uuid.UUID
}

// ID returns the registration's unique identifier.
func (r *Registration) ID() uuid.UUID {
	return r.id
}

// Close deregisters the callback now. Closing twice, or closing after the
// scope has already torn the registration down, is a no-op.
func (r *Registration) Close() {
	r.fin.force()
}

// Register wires callback into scope s using the caller's register and
// deregister adapters. The adapters must be consistent: deregister must
// accept the handle that register produced.
//
// The value handed to register is not the callback itself but a
// trampoline that checks the registration is still live on every
// invocation. While live, the trampoline delegates to callback and
// returns its result. Once the registration is torn down, invoking the
// trampoline panics with *errors.Error (errors.KindStaleCallback): a
// retained stale trampoline indicates the external system ignored
// deregistration, which is a programming error, not a recoverable state.
// The guard check is a runtime backstop; adapter consistency cannot be
// verified statically.
//
// register is called synchronously before Register returns, so the
// registration is externally visible immediately. During deregistration
// the guard slot is cleared strictly before the deregister adapter runs.
// Under WithShared the callback runs while holding the slot's guard, so
// deregistration additionally waits for any invocation already in flight;
// a shared-mode callback must therefore not close its own registration
// from within its own invocation.
func Register[A, R, H any](s *Scope, callback func(A) R, register func(func(A) R) H, deregister func(H)) *Registration {
	if callback == nil {
		panic(errors.InvalidInput(errors.PhaseRegister, "nil callback"))
	}
	if register == nil || deregister == nil {
		panic(errors.InvalidInput(errors.PhaseRegister, "nil register or deregister adapter"))
	}
	s.checkOpen()

	id := uuid.New()
	scopeID := s.id.String()
	regID := id.String()

	var slot guard.Slot[func(A) R]
	if s.shared {
		slot = guard.NewShared(callback)
	} else {
		slot = guard.New(callback)
	}

	trampoline := func(a A) R {
		var out R
		ok := slot.With(func(c func(A) R) {
			out = c(a)
		})
		if !ok {
			panic(errors.StaleCallback(scopeID, regID))
		}
		return out
	}

	handle := register(trampoline)

	fin := newFinalizer(func() {
		slot.Clear()
		deregister(handle)

		s.log.Debug("callback deregistered",
			zap.String("scope", scopeID),
			zap.String("registration", regID))
		s.notify(Event{Type: EventDeregistered, Scope: s.id, Registration: id})
		if ins := getInstruments(); ins != nil {
			ins.deregistered(context.Background())
		}
	})
	s.add(fin)

	s.log.Debug("callback registered",
		zap.String("scope", scopeID),
		zap.String("registration", regID))
	s.notify(Event{Type: EventRegistered, Scope: s.id, Registration: id})
	if ins := getInstruments(); ins != nil {
		ins.registered(context.Background())
	}

	return &Registration{fin: fin, id: id}
}
