// Package scoped registers short-lived callbacks with APIs that expect
// callbacks valid forever.
//
// Many registration APIs take a callback and assume it stays valid
// indefinitely, while the caller only needs it for one well-defined block
// of execution. This library bridges the two: callbacks are registered
// through a Scope, and the Scope guarantees every one of them is
// deregistered no later than when the block ends, even if the caller
// forgets, and even if the block exits by panic.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	scoped/            Root package: Scope, Registration, entry points
//	├── guard/         Runtime-checked slot backing each bridged callback
//	├── errors/        Structured error types and misuse panic payloads
//	├── cmd/inspect/   Interactive demo driving a toy event bus
//	└── examples/      Runnable examples
//
// # Quick Start
//
// Enter a scope and register a callback with your external system's
// register/deregister pair:
//
//	sum := scoped.Enter(func(s *scoped.Scope) int {
//	    reg := scoped.Register(s,
//	        func(n int) int { return n * 2 },
//	        bus.Subscribe,   // func(func(int) int) SubID
//	        bus.Unsubscribe, // func(SubID)
//	    )
//	    defer reg.Close()
//
//	    return bus.Fire(21) // 42, via the registered callback
//	})
//
// Closing the Registration deregisters immediately. Dropping it without
// Close defers deregistration to the end of the scope. Either way the
// deregister adapter runs exactly once.
//
// # Misuse Detection
//
// The external system receives a trampoline, not the callback itself. If
// it holds on to the trampoline and invokes it after deregistration, the
// trampoline panics with a *errors.Error instead of silently running (or
// corrupting) freed state. That panic is a programming error in the
// external system's deregister handling and is deliberately unrecoverable.
//
// # Concurrency
//
// The default model is single-goroutine: the scope, its registrations and
// their trampolines all live on the goroutine that entered the scope. If
// the external system may invoke a trampoline from other goroutines, pass
// scoped.WithShared() so the guard slots use mutual exclusion; a call
// racing a deregistration then fails loudly rather than interleaving.
//
// EnterContext keeps the scope alive while its body blocks on a context.
// EnterAsync runs the body on its own goroutine and returns a Future; the
// scope stays alive until the body resolves, not merely until the first
// wait.
package scoped
