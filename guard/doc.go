// Package guard provides the runtime-checked slot that carries a callback
// across a lifetime boundary.
//
// A bridged callback (the trampoline handed to an external registration
// API) never captures the caller's callback directly. It captures a Slot,
// reads it on every invocation, and fails loudly when the slot is empty.
// Deregistration clears the slot; clearing happens strictly before the
// external deregister adapter runs, so once deregistration completes no
// invocation can observe a populated slot.
//
// Two implementations back the same contract:
//
//	guard.New(v)       single-goroutine cell, the default ownership model
//	guard.NewShared(v) mutex-backed cell, for trampolines invoked from
//	                   other goroutines
//
// Invocation goes through Slot.With, which runs the callback while
// holding the slot's guard. With the shared cell, an invocation racing a
// concurrent deregistration either wins (runs to completion before Clear
// proceeds) or cleanly loses (observes the empty slot and fails). Clear
// blocks until any in-flight invocation returns, so once deregistration
// completes no callback is still executing. The flip side: a callback in
// the shared cell must not clear its own slot, as the guard is not
// reentrant. The single-goroutine cell has no such constraint.
package guard
