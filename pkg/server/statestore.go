package server

import (
	"context"
	"sync"
	"time"
)

// StateStore persists detached session records so they can be resumed
// later, possibly by a different server process.
type StateStore interface {
	// Save stores a session record until expiresAt.
	Save(ctx context.Context, id string, data []byte, expiresAt time.Time) error

	// Load returns a session record and its expiry. It returns
	// ErrSessionNotFound when no record exists; expiry enforcement is the
	// caller's job.
	Load(ctx context.Context, id string) ([]byte, time.Time, error)

	// Delete removes a session record. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-process StateStore. Records do not survive a
// restart; use BoltStore when they should.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

// Save implements StateStore.
func (s *MemoryStore) Save(_ context.Context, id string, data []byte, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = memoryRecord{data: append([]byte(nil), data...), expiresAt: expiresAt}
	return nil
}

// Load implements StateStore.
func (s *MemoryStore) Load(_ context.Context, id string) ([]byte, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, time.Time{}, ErrSessionNotFound
	}
	return append([]byte(nil), rec.data...), rec.expiresAt, nil
}

// Delete implements StateStore.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
