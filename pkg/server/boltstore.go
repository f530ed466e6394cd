package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var sessionsBucket = []byte("sessions")

// BoltStore is a StateStore backed by a bbolt file, so detached sessions
// survive a server restart.
type BoltStore struct {
	db *bolt.DB
}

type boltEnvelope struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Data      json.RawMessage `json:"data"`
}

// OpenBoltStore opens (creating if needed) a bbolt-backed store at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("lattice: open session store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("lattice: init session store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save implements StateStore.
func (s *BoltStore) Save(_ context.Context, id string, data []byte, expiresAt time.Time) error {
	raw, err := json.Marshal(boltEnvelope{ExpiresAt: expiresAt, Data: data})
	if err != nil {
		return fmt.Errorf("lattice: encode session %s: %w", id, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(id), raw)
	})
}

// Load implements StateStore.
func (s *BoltStore) Load(_ context.Context, id string) ([]byte, time.Time, error) {
	var env boltEnvelope
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionsBucket).Get([]byte(id))
		if raw == nil {
			return ErrSessionNotFound
		}
		return json.Unmarshal(raw, &env)
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return env.Data, env.ExpiresAt, nil
}

// Delete implements StateStore.
func (s *BoltStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(id))
	})
}
