package main

import (
	"sort"
)

// bus is a stand-in for an external registration API. It hands out
// integer handles and keeps every callback it was given until it is asked
// to deregister that handle. As far as the bus is concerned, callbacks
// live forever.
type bus struct {
	subs map[int]func(string) string
	next int
}

func newBus() *bus {
	return &bus{subs: make(map[int]func(string) string)}
}

func (b *bus) register(cb func(string) string) int {
	b.next++
	b.subs[b.next] = cb
	return b.next
}

func (b *bus) deregister(h int) {
	delete(b.subs, h)
}

// fire invokes every subscribed callback in handle order and collects the
// results.
func (b *bus) fire(msg string) []string {
	handles := make([]int, 0, len(b.subs))
	for h := range b.subs {
		handles = append(handles, h)
	}
	sort.Ints(handles)

	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, b.subs[h](msg))
	}
	return out
}

func (b *bus) len() int {
	return len(b.subs)
}
