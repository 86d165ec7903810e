package guard

import (
	"sync"
)

// Slot holds the live value backing a bridged callback.
// A populated slot means the value may still be used; an empty slot means
// any further use is a misuse the caller must fail on.
type Slot[T any] interface {
	// Get returns the stored value, or ok=false once the slot is cleared.
	Get() (T, bool)

	// With runs fn with the stored value while holding the slot's guard,
	// or reports false without running fn if the slot is empty. On the
	// shared cell, Clear blocks until fn returns, so a deregistration
	// never completes while a use of the value is still in flight.
	With(fn func(T)) bool

	// Clear empties the slot and drops the stored value.
	// Clearing an already-empty slot is a no-op.
	Clear()
}

// cell is the single-goroutine slot used by the default ownership model.
type cell[T any] struct {
	value T
	full  bool
}

// New creates a slot for the single-owner, single-goroutine model.
func New[T any](value T) Slot[T] {
	return &cell[T]{value: value, full: true}
}

func (c *cell[T]) Get() (T, bool) {
	if !c.full {
		var zero T
		return zero, false
	}
	return c.value, true
}

func (c *cell[T]) With(fn func(T)) bool {
	if !c.full {
		return false
	}
	fn(c.value)
	return true
}

func (c *cell[T]) Clear() {
	var zero T
	c.value = zero
	c.full = false
}

// sharedCell is the mutex-backed slot for registrations whose trampoline
// may be invoked from a different goroutine than the one clearing it.
// With holds the mutex for the whole invocation: a caller that loses the
// race to Clear observes the empty slot, and Clear waits for any call
// already in flight, so deregistration completing means no invocation is
// still running.
//
// The cost of that guarantee is that fn must not clear its own slot;
// the mutex is not reentrant and doing so deadlocks.
type sharedCell[T any] struct {
	value T
	full  bool
	mu    sync.Mutex
}

// NewShared creates a slot safe for cross-goroutine use.
func NewShared[T any](value T) Slot[T] {
	return &sharedCell[T]{value: value, full: true}
}

func (c *sharedCell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		var zero T
		return zero, false
	}
	return c.value, true
}

func (c *sharedCell[T]) With(fn func(T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return false
	}
	fn(c.value)
	return true
}

func (c *sharedCell[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.full = false
}
