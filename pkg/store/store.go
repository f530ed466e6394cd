// Package store provides the reducer-driven observable state primitive
// backing views.
//
// A Store holds one snapshot value. Dispatch runs the reducer, replaces
// the snapshot wholesale, and notifies every current subscriber
// synchronously before it returns. Readers always observe a fully-formed
// snapshot: state is never mutated in place.
package store

import "sync"

// Action describes one state transition request.
type Action struct {
	Type    string
	Payload any
}

// Reducer computes the next snapshot from the previous one and an action.
// It must treat the previous snapshot as read-only.
type Reducer[S any] func(prev S, action Action) S

// Store is an observable snapshot container.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S]
	subs    map[uint64]func(S)
	nextSub uint64
}

// New creates a store with the given initial snapshot and reducer.
// A nil reducer keeps the snapshot unchanged on every dispatch.
func New[S any](initial S, reducer Reducer[S]) *Store[S] {
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		subs:    make(map[uint64]func(S)),
	}
}

// Get returns the current snapshot.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces the action into a new snapshot and synchronously
// notifies all current subscribers before returning.
func (s *Store[S]) Dispatch(action Action) {
	s.mu.Lock()
	if s.reducer != nil {
		s.state = s.reducer(s.state, action)
	}
	next := s.state
	listeners := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// Subscribe registers a listener for snapshot changes and returns its
// unsubscribe function. Unsubscribing twice is harmless.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
