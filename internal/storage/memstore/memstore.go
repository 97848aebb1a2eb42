package memstore

import (
	"sync"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// Store is an in-memory storage.Provider. Nothing survives the process;
// it backs tests and --memory sessions.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		blobs: make(map[string][]byte),
	}
}

// Open returns the backend for name. Backends with the same name share data.
func (s *Store) Open(name string) (storage.Backend, error) {
	return &memBackend{store: s, name: name}, nil
}

// Bytes returns a copy of what is stored under name, or nil.
func (s *Store) Bytes(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[name]
	if !ok {
		return nil
	}
	return append([]byte(nil), data...)
}

// Put stores a copy of data under name.
func (s *Store) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// store a copy to avoid external modification
	s.blobs[name] = append([]byte(nil), data...)
}

type memBackend struct {
	store *Store
	name  string
}

func (b *memBackend) Load() ([]byte, error) {
	return b.store.Bytes(b.name), nil
}

func (b *memBackend) Store(data []byte) error {
	b.store.Put(b.name, data)
	return nil
}
