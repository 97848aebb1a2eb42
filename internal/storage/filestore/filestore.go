package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// Dir is an on-disk storage.Provider. Each backend is one file in the
// directory, named exactly as requested:
//
//	<dir>/metadata.txt
//	<dir>/<table>.uzdb
//
// Files hold whatever the caller stores. For tables that is a raw
// concatenation of 4096-byte pages with no file header.
type Dir struct {
	dir string
}

// New creates a Dir storing all files in dir, creating it if needed.
func New(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}
	return &Dir{dir: dir}, nil
}

// Path returns the data directory.
func (d *Dir) Path() string { return d.dir }

// Open returns the backend for the file called name.
func (d *Dir) Open(name string) (storage.Backend, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("filestore: invalid name %q", name)
	}
	return &fileBackend{path: d.filePath(name)}, nil
}

func (d *Dir) filePath(name string) string {
	return filepath.Join(d.dir, name)
}

type fileBackend struct {
	path string
}

func (b *fileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", filepath.Base(b.path), err)
	}
	return data, nil
}

// Store truncates and rewrites the whole file.
func (b *fileBackend) Store(data []byte) error {
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("filestore: write %s: %w", filepath.Base(b.path), err)
	}
	return nil
}
