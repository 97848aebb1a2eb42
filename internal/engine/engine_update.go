package engine

import (
	"log/slog"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// storedRow pairs a row's raw bytes with its decoded form. Rows that do not
// decode keep ok=false and are written back untouched by update and delete.
type storedRow struct {
	data []byte
	row  sql.Row
	ok   bool
}

func scanStored(log *slog.Logger, schema *sql.TableSchema, tbl *storage.Table) ([]storedRow, ScanStats) {
	stats := ScanStats{Pages: tbl.PageCount()}
	var out []storedRow

	_ = tbl.Scan(func(id storage.RowID, data []byte) error {
		row, ok := storage.DecodeRow(schema, data)
		if ok {
			stats.Rows++
		} else {
			stats.Skipped++
			log.Debug("keeping unreadable row as is",
				"table", schema.Name, "page", id.Page, "slot", id.Slot, "bytes", len(data))
		}
		out = append(out, storedRow{data: data, row: row, ok: ok})
		return nil
	})
	return out, stats
}

// applyUpdate returns the new encoded rowset with assignments applied to
// every row matching where, and the number of rows changed.
func applyUpdate(schema *sql.TableSchema, rows []storedRow, where sql.Expr, assigns map[string]sql.Value) ([][]byte, int, error) {
	out := make([][]byte, 0, len(rows))
	affected := 0

	for _, r := range rows {
		if !r.ok || !matches(where, r.row) {
			out = append(out, r.data)
			continue
		}
		for col, v := range assigns {
			r.row[col] = v
		}
		data, err := storage.EncodeRow(schema, r.row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, data)
		affected++
	}
	return out, affected, nil
}

// applyDelete returns the encoded rows that survive, and the number removed.
func applyDelete(rows []storedRow, where sql.Expr) ([][]byte, int) {
	out := make([][]byte, 0, len(rows))
	deleted := 0

	for _, r := range rows {
		if r.ok && matches(where, r.row) {
			deleted++
			continue
		}
		out = append(out, r.data)
	}
	return out, deleted
}
