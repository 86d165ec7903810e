package scoped

import (
	"github.com/google/uuid"
)

// Event types for registration lifecycle notifications.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventDeregistered
	EventScopeEnd
)

// Event represents a registration lifecycle event.
type Event struct {
	Scope        uuid.UUID
	Registration uuid.UUID
	Type         EventType
}

// Observer receives notifications about registration lifecycle events.
// Notification is synchronous, on the goroutine performing the operation.
type Observer interface {
	OnScopeEvent(Event)
}

// Subscribe adds an observer for lifecycle events.
func (s *Scope) Subscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

// Unsubscribe removes an observer.
func (s *Scope) Unsubscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Scope) notify(e Event) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, o := range s.observers {
		o.OnScopeEvent(e)
	}
}
