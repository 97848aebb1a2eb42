package engine

import (
	"log/slog"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// executeSelect runs the full pipeline: scan, filter, sort, limit, project.
func (e *DBEngine) executeSelect(log *slog.Logger, stmt *sql.SelectStmt) (*Result, error) {
	schema, tbl, err := e.lookup(stmt.TableName)
	if err != nil {
		return nil, err
	}

	cols := schema.ColumnNames()
	if !stmt.IsWildcard() {
		cols = stmt.ColumnNames()
	}
	if err := checkColumns(schema, cols...); err != nil {
		return nil, err
	}
	if err := checkWhere(schema, stmt.Where); err != nil {
		return nil, err
	}
	for _, key := range stmt.OrderBy {
		if err := checkColumns(schema, key.Column); err != nil {
			return nil, err
		}
	}

	rows, stats := scanRows(log, schema, tbl)

	if stmt.Where != nil {
		rows = filterRows(rows, stmt.Where)
	}
	if len(stmt.OrderBy) > 0 {
		sortRows(schema, rows, stmt.OrderBy)
	}
	if stmt.Limit != nil && *stmt.Limit < len(rows) {
		rows = rows[:*stmt.Limit]
	}
	if !stmt.IsWildcard() {
		rows = projectRows(rows, cols)
	}

	return &Result{
		Kind:    ResultRows,
		Columns: cols,
		Rows:    rows,
		Stats:   stats,
	}, nil
}

// scanRows decodes every stored row. Rows that fail to decode are skipped,
// counted and logged.
func scanRows(log *slog.Logger, schema *sql.TableSchema, tbl *storage.Table) ([]sql.Row, ScanStats) {
	stats := ScanStats{Pages: tbl.PageCount()}
	rows := make([]sql.Row, 0)

	_ = tbl.Scan(func(id storage.RowID, data []byte) error {
		row, ok := storage.DecodeRow(schema, data)
		if !ok {
			stats.Skipped++
			log.Debug("skipping unreadable row",
				"table", schema.Name, "page", id.Page, "slot", id.Slot, "bytes", len(data))
			return nil
		}
		rows = append(rows, row)
		return nil
	})

	stats.Rows = len(rows)
	return rows, stats
}

// checkColumns reports the first name the schema does not have.
func checkColumns(schema *sql.TableSchema, names ...string) error {
	for _, name := range names {
		if _, ok := schema.Column(name); !ok {
			return unknownColumn(schema.Name, name)
		}
	}
	return nil
}

func checkWhere(schema *sql.TableSchema, where sql.Expr) error {
	if where == nil {
		return nil
	}
	var err error
	sql.WalkColumns(where, func(name string) {
		if err == nil {
			err = checkColumns(schema, name)
		}
	})
	return err
}
