package engine

import (
	"fmt"
	"slices"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/logging"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// executeCreate registers the schema, writes a table file with one empty
// page and saves the catalog.
func (e *DBEngine) executeCreate(stmt *sql.CreateTableStmt) (*Result, error) {
	name := stmt.TableName
	if _, ok := e.catalog.Lookup(name); ok {
		return nil, &SchemaError{Table: name, Err: ErrTableExists}
	}

	seen := make(map[string]bool, len(stmt.Columns))
	for _, col := range stmt.Columns {
		if seen[col.Name] {
			return nil, schemaErrorf(name, col.Name, "duplicate column")
		}
		seen[col.Name] = true
	}
	schema := &sql.TableSchema{Name: name, Columns: slices.Clone(stmt.Columns)}

	backend, err := e.provider.Open(name + tableFileSuffix)
	if err != nil {
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}
	tbl, err := storage.CreateTable(backend, logging.WithTable(e.log, name))
	if err != nil {
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}

	if err := e.catalog.Add(schema); err != nil {
		return nil, err
	}
	if err := e.catalog.Save(); err != nil {
		e.catalog.Remove(name)
		return nil, err
	}
	e.tables[name] = tbl

	e.log.Info("table created", "table", name, "columns", len(schema.Columns))
	return messageResult("table created: "+name, 0), nil
}
