package engine

import (
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// executeInsert builds a row from the column/value lists, encodes it and
// appends it to the table, allocating a page when the last one is full.
func (e *DBEngine) executeInsert(stmt *sql.InsertStmt) (*Result, error) {
	schema, tbl, err := e.lookup(stmt.TableName)
	if err != nil {
		return nil, err
	}

	if len(stmt.Columns) != len(stmt.Values) {
		return nil, schemaErrorf(schema.Name, "", "%d columns but %d values", len(stmt.Columns), len(stmt.Values))
	}

	row := make(sql.Row, len(stmt.Columns))
	for i, name := range stmt.Columns {
		col, ok := schema.Column(name)
		if !ok {
			return nil, unknownColumn(schema.Name, name)
		}
		if _, dup := row[name]; dup {
			return nil, schemaErrorf(schema.Name, name, "duplicate column in column list")
		}
		v, err := storage.CoerceValue(col, stmt.Values[i])
		if err != nil {
			return nil, err
		}
		row[name] = v
	}

	// There is no null marker, so a required column must be given.
	for _, col := range schema.Columns {
		if !col.NotNull && !col.PrimaryKey {
			continue
		}
		if _, ok := row[col.Name]; !ok {
			return nil, schemaErrorf(schema.Name, col.Name, "no value provided for required column")
		}
	}

	data, err := storage.EncodeRow(schema, row)
	if err != nil {
		return nil, err
	}
	if _, err := tbl.Insert(data); err != nil {
		return nil, err
	}
	return messageResult("1 row inserted", 1), nil
}
