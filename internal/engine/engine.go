package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/catalog"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/logging"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// tableFileSuffix is appended to a table name to get its backend name.
const tableFileSuffix = ".uzdb"

// DBEngine is the main database engine struct. It owns the schema catalog
// and the page storage of every table.
//
// A DBEngine is not safe for concurrent use.
type DBEngine struct {
	started  bool
	provider storage.Provider
	catalog  *catalog.Catalog
	tables   map[string]*storage.Table
	log      *slog.Logger
}

// Option configures a DBEngine.
type Option func(*DBEngine)

// WithLogger sets the logger the engine writes to. The default discards.
func WithLogger(log *slog.Logger) Option {
	return func(e *DBEngine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates a new DBEngine on top of provider. Call Start before use.
func New(provider storage.Provider, opts ...Option) *DBEngine {
	e := &DBEngine{
		provider: provider,
		tables:   make(map[string]*storage.Table),
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.WithComponent(e.log, "engine")
	return e
}

// Start loads the catalog and opens the storage of every table it lists.
// Table files are read concurrently.
func (e *DBEngine) Start(ctx context.Context) error {
	if e.started {
		return fmt.Errorf("engine already started")
	}

	metaBackend, err := e.provider.Open(catalog.MetadataName)
	if err != nil {
		return fmt.Errorf("open metadata: %w", err)
	}
	cat, err := catalog.Load(metaBackend)
	if err != nil {
		return err
	}

	names := cat.Names()
	opened := make([]*storage.Table, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tbl, err := e.openTable(name)
			if err != nil {
				return fmt.Errorf("open table %s: %w", name, err)
			}
			opened[i] = tbl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.catalog = cat
	for i, name := range names {
		e.tables[name] = opened[i]
	}
	e.started = true
	e.log.Info("engine started", "tables", len(names))
	return nil
}

func (e *DBEngine) openTable(name string) (*storage.Table, error) {
	backend, err := e.provider.Open(name + tableFileSuffix)
	if err != nil {
		return nil, err
	}
	return storage.OpenTable(backend, logging.WithTable(e.log, name))
}

// ListTables returns the table names in creation order.
func (e *DBEngine) ListTables() ([]string, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	return e.catalog.Names(), nil
}

// TableSchema returns a copy of the schema of the named table.
func (e *DBEngine) TableSchema(name string) (*sql.TableSchema, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	schema, ok := e.catalog.Lookup(name)
	if !ok {
		return nil, tableNotFound(name)
	}
	return schema.Clone(), nil
}

// lookup resolves a table name to its schema and storage.
func (e *DBEngine) lookup(name string) (*sql.TableSchema, *storage.Table, error) {
	schema, ok := e.catalog.Lookup(name)
	if !ok {
		return nil, nil, tableNotFound(name)
	}
	tbl, ok := e.tables[name]
	if !ok {
		return nil, nil, fmt.Errorf("table %s has no storage", name)
	}
	return schema, tbl, nil
}
