package pointer

import (
	"sync"
	"sync/atomic"
)

// Listener handles one pointer event.
type Listener func(ev *Event)

// Binding pairs an event kind with the listener it should reach.
type Binding struct {
	Kind Kind
	Fn   Listener
}

// listenerEntry is a single bound listener.
type listenerEntry struct {
	id    uint64
	fn    Listener
	alive atomic.Bool
}

// Target is a registry of listeners keyed by event kind. It stands in for the
// window-level event target that a drag session binds to while it is active.
type Target struct {
	mu        sync.RWMutex
	listeners map[Kind][]*listenerEntry
	nextID    uint64
}

// NewTarget creates an empty listener target.
func NewTarget() *Target {
	return &Target{
		listeners: make(map[Kind][]*listenerEntry),
	}
}

// Bind registers all bindings and returns a disposer that removes them.
// Bindings with a nil listener or KindNone are skipped. The disposer may be
// called any number of times; only the first call has an effect.
func (t *Target) Bind(bindings ...Binding) (unbind func()) {
	t.mu.Lock()
	entries := make(map[Kind][]*listenerEntry, len(bindings))
	for _, b := range bindings {
		if b.Kind == KindNone || b.Fn == nil {
			continue
		}
		t.nextID++
		e := &listenerEntry{id: t.nextID, fn: b.Fn}
		e.alive.Store(true)
		t.listeners[b.Kind] = append(t.listeners[b.Kind], e)
		entries[b.Kind] = append(entries[b.Kind], e)
	}
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.remove(entries)
		})
	}
}

// remove marks the entries dead and drops them from the registry.
func (t *Target) remove(entries map[Kind][]*listenerEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for kind, dead := range entries {
		for _, e := range dead {
			e.alive.Store(false)
		}
		current := t.listeners[kind]
		kept := current[:0:0]
		for _, e := range current {
			if e.alive.Load() {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(t.listeners, kind)
		} else {
			t.listeners[kind] = kept
		}
	}
}

// Dispatch delivers an event to every listener bound to its kind, in binding
// order. A listener removed while the event is in flight is skipped.
func (t *Target) Dispatch(ev *Event) {
	if ev == nil {
		return
	}

	t.mu.RLock()
	entries := make([]*listenerEntry, len(t.listeners[ev.Kind]))
	copy(entries, t.listeners[ev.Kind])
	t.mu.RUnlock()

	for _, e := range entries {
		if !e.alive.Load() {
			continue
		}
		e.fn(ev)
	}
}

// ListenerCount returns the number of bound listeners across all kinds.
func (t *Target) ListenerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, l := range t.listeners {
		n += len(l)
	}
	return n
}

// Has returns true if at least one listener is bound for kind.
func (t *Target) Has(kind Kind) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners[kind]) > 0
}
