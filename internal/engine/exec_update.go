package engine

import (
	"fmt"
	"log/slog"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// executeUpdate rewrites every row matching WHERE, or every row when there
// is no WHERE, and replaces the table contents.
func (e *DBEngine) executeUpdate(log *slog.Logger, stmt *sql.UpdateStmt) (*Result, error) {
	schema, tbl, err := e.lookup(stmt.TableName)
	if err != nil {
		return nil, err
	}

	assigns := make(map[string]sql.Value, len(stmt.Assignments))
	for _, a := range stmt.Assignments {
		col, ok := schema.Column(a.Column)
		if !ok {
			return nil, unknownColumn(schema.Name, a.Column)
		}
		if _, dup := assigns[a.Column]; dup {
			return nil, schemaErrorf(schema.Name, a.Column, "assigned more than once")
		}
		v, err := storage.CoerceValue(col, a.Value)
		if err != nil {
			return nil, err
		}
		assigns[a.Column] = v
	}
	if err := checkWhere(schema, stmt.Where); err != nil {
		return nil, err
	}

	rows, stats := scanStored(log, schema, tbl)
	newRows, affected, err := applyUpdate(schema, rows, stmt.Where, assigns)
	if err != nil {
		return nil, err
	}
	if affected > 0 {
		if err := tbl.Replace(newRows); err != nil {
			return nil, err
		}
	}

	res := messageResult(fmt.Sprintf("%d row(s) updated", affected), affected)
	res.Stats = stats
	return res, nil
}
