package store

import "sync"

// Reducer folds an action into one mounted substate slice.
// It must be pure: same inputs, same output, no mutation of the input.
type Reducer func(sub any, action any) any

// Store is a minimal predictable state container. Reducers own their slice
// of the state tree under the key they were mounted with; Dispatch is the
// only mutator. Reads return the current snapshot and callers must treat
// it as immutable.
type Store struct {
	mu       sync.RWMutex
	order    []string
	reducers map[string]Reducer
	state    map[string]any

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func()
}

// New creates an empty store.
func New() *Store {
	return &Store{
		reducers: map[string]Reducer{},
		state:    map[string]any{},
		subs:     map[int]func(){},
	}
}

// Mount registers a reducer under a key and seeds its slice with the
// reducer's default state (the result of reducing a nil slice with an
// unknown action). Mounting the same key again replaces the reducer but
// keeps the existing slice.
func (s *Store) Mount(key string, r Reducer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reducers[key]; !exists {
		s.order = append(s.order, key)
		s.state[key] = r(nil, nil)
	}
	s.reducers[key] = r
}

// Dispatch runs every mounted reducer against the action in mount order,
// swaps in the new state map and then notifies subscribers. Dispatch calls
// are serialized; reducers run synchronously.
func (s *Store) Dispatch(action any) {
	s.mu.Lock()
	next := make(map[string]any, len(s.state))
	for k, v := range s.state {
		next[k] = v
	}
	for _, key := range s.order {
		next[key] = s.reducers[key](next[key], action)
	}
	s.state = next
	s.mu.Unlock()

	s.notify()
}

// State returns a snapshot of the whole state tree.
func (s *Store) State() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[string]any, len(s.state))
	for k, v := range s.state {
		snapshot[k] = v
	}
	return snapshot
}

// Sub returns the substate mounted under key, or nil.
func (s *Store) Sub(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state[key]
}

// Subscribe registers a listener invoked after every dispatch.
// The returned function removes the listener.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	listeners := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
