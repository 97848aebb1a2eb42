package engine

import (
	"fmt"
	"log/slog"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

// executeDelete removes every row matching WHERE. Without WHERE the table is
// emptied. Unreadable rows are never deleted.
func (e *DBEngine) executeDelete(log *slog.Logger, stmt *sql.DeleteStmt) (*Result, error) {
	schema, tbl, err := e.lookup(stmt.TableName)
	if err != nil {
		return nil, err
	}
	if err := checkWhere(schema, stmt.Where); err != nil {
		return nil, err
	}

	rows, stats := scanStored(log, schema, tbl)
	kept, deleted := applyDelete(rows, stmt.Where)
	if deleted > 0 {
		if err := tbl.Replace(kept); err != nil {
			return nil, err
		}
	}

	res := messageResult(fmt.Sprintf("%d row(s) deleted", deleted), deleted)
	res.Stats = stats
	return res, nil
}
