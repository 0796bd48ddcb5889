package store

import "sync"

// Listener is notified after an action changed the state.
type Listener func(prev, next State, a Action)

// Logger receives debug output from the store.
type Logger interface {
	Debug(msg string, args ...any)
}

// Store holds the current State and applies actions to it through Reduce.
// Readers always see a complete snapshot.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
	logger    Logger
}

// New creates a store holding the empty state.
func New() *Store {
	return &Store{
		listeners: make(map[uint64]Listener),
	}
}

// SetLogger sets a logger for dispatched actions.
func (s *Store) SetLogger(l Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and notifies listeners if the state changed. It reports
// whether the action was applied.
func (s *Store) Dispatch(a Action) bool {
	if a == nil {
		return false
	}

	s.mu.Lock()
	prev := s.state
	next, changed := reduce(prev, a)
	if !changed {
		if s.logger != nil {
			s.logger.Debug("store: %s ignored", a.Type())
		}
		s.mu.Unlock()
		return false
	}
	s.state = next
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(prev, next, a)
	}
	return true
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}
