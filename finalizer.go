package scoped

import (
	"sync"
)

// finalizer holds a deferred deregistration action and runs it at most
// once. It is shared between the owning scope's registry and the
// Registration returned to the caller; whichever forces first wins and
// the other force becomes a no-op.
type finalizer struct {
	mu     sync.Mutex
	action func()
}

func newFinalizer(action func()) *finalizer {
	return &finalizer{action: action}
}

// force consumes and runs the action. The action runs outside the lock
// so a deregister adapter may itself touch the scope without deadlock.
func (f *finalizer) force() {
	f.mu.Lock()
	action := f.action
	f.action = nil
	f.mu.Unlock()

	if action != nil {
		action()
	}
}

func (f *finalizer) forced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.action == nil
}
