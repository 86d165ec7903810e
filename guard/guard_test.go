package guard

import (
	"sync"
	"testing"
	"time"
)

func TestCell_GetAndClear(t *testing.T) {
	s := New(42)

	v, ok := s.Get()
	if !ok {
		t.Fatal("fresh slot should be populated")
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}

	s.Clear()

	v, ok = s.Get()
	if ok {
		t.Fatal("cleared slot should be empty")
	}
	if v != 0 {
		t.Fatalf("cleared slot should return zero value, got %d", v)
	}
}

func TestCell_ClearIdempotent(t *testing.T) {
	s := New("live")
	s.Clear()
	s.Clear()

	if _, ok := s.Get(); ok {
		t.Fatal("slot should stay empty after repeated Clear")
	}
}

func TestCell_DropsValue(t *testing.T) {
	called := false
	s := New(func() { called = true })

	f, ok := s.Get()
	if !ok {
		t.Fatal("fresh slot should be populated")
	}
	f()
	if !called {
		t.Fatal("stored callback should be invocable")
	}

	s.Clear()
	if f, ok := s.Get(); ok || f != nil {
		t.Fatal("cleared slot should not retain the callback")
	}
}

func TestCell_With(t *testing.T) {
	s := New(5)

	got := 0
	if !s.With(func(v int) { got = v }) {
		t.Fatal("With on a populated slot should run fn")
	}
	if got != 5 {
		t.Fatalf("With observed %d, want 5", got)
	}

	s.Clear()
	if s.With(func(int) { t.Error("fn must not run on an empty slot") }) {
		t.Fatal("With on a cleared slot should report false")
	}
}

func TestSharedCell_WithBlocksClear(t *testing.T) {
	s := NewShared(1)

	entered := make(chan struct{})
	release := make(chan struct{})
	withDone := make(chan struct{})
	cleared := make(chan struct{})

	go func() {
		defer close(withDone)
		s.With(func(int) {
			close(entered)
			<-release
		})
	}()
	<-entered

	go func() {
		s.Clear()
		close(cleared)
	}()

	// Clear must wait for the in-flight use of the value.
	select {
	case <-cleared:
		t.Fatal("Clear completed while a With call was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-withDone
	<-cleared

	if _, ok := s.Get(); ok {
		t.Fatal("slot should be empty after Clear")
	}
	if s.With(func(int) {}) {
		t.Fatal("With should report false after Clear")
	}
}

func TestSharedCell_GetAndClear(t *testing.T) {
	s := NewShared(7)

	if v, ok := s.Get(); !ok || v != 7 {
		t.Fatalf("expected (7, true), got (%d, %v)", v, ok)
	}

	s.Clear()

	if _, ok := s.Get(); ok {
		t.Fatal("cleared shared slot should be empty")
	}
}

func TestSharedCell_ConcurrentReaders(t *testing.T) {
	s := NewShared(1)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 1000; j++ {
				v, ok := s.Get()
				if ok && v != 1 {
					t.Errorf("observed torn value %d", v)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		s.Clear()
	}()

	close(start)
	wg.Wait()

	if _, ok := s.Get(); ok {
		t.Fatal("slot should be empty after Clear")
	}
}
