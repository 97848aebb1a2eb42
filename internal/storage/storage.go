package storage

// Backend holds the raw bytes of one persisted object: a table file or the
// metadata file. Every write replaces the whole object.
//
// Different implementations are possible:
//   - on-disk, one file per object (filestore)
//   - in-memory, for tests and throwaway sessions (memstore)
type Backend interface {
	// Load returns the stored bytes, or nil with no error when nothing
	// has been stored yet.
	Load() ([]byte, error)

	// Store replaces the stored bytes with data.
	Store(data []byte) error
}

// Provider hands out Backends by name.
type Provider interface {
	Open(name string) (Backend, error)
}
