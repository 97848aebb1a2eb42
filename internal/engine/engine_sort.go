package engine

import (
	"slices"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

// sortRows orders rows by keys. Each key is a stable sort, applied from the
// last key to the first, so the first key has the highest precedence.
// A row without a value for a key sorts as that column type's zero value.
func sortRows(schema *sql.TableSchema, rows []sql.Row, keys []sql.OrderKey) {
	for i := len(keys) - 1; i >= 0; i-- {
		key := keys[i]
		zero := sql.ZeroValue(sql.TypeInteger)
		if col, ok := schema.Column(key.Column); ok {
			zero = sql.ZeroValue(col.Type)
		}

		slices.SortStableFunc(rows, func(a, b sql.Row) int {
			c := compareValues(valueOr(a, key.Column, zero), valueOr(b, key.Column, zero))
			if key.Desc {
				return -c
			}
			return c
		})
	}
}

func valueOr(row sql.Row, col string, def sql.Value) sql.Value {
	if v, ok := row[col]; ok {
		return v
	}
	return def
}
