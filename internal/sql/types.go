package sql

import (
	"strconv"
	"strings"
)

// DataType represents the logical type of a value in a column.
type DataType int

const (
	TypeInteger DataType = iota
	TypeText
	TypeReal
)

func (t DataType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeText:
		return "TEXT"
	case TypeReal:
		return "REAL"
	default:
		return "DataType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value represents a single cell in a table (one column in one row).
// Only the field matching Type should be read; other fields remain at their
// zero values to keep the struct compact and easy to inspect while debugging.
type Value struct {
	Type DataType

	I64 int64   // for TypeInteger
	F64 float64 // for TypeReal
	S   string  // for TypeText
}

func IntValue(i int64) Value    { return Value{Type: TypeInteger, I64: i} }
func RealValue(f float64) Value { return Value{Type: TypeReal, F64: f} }
func TextValue(s string) Value  { return Value{Type: TypeText, S: s} }

// ZeroValue returns the value a column of type t holds when nothing was stored for it.
func ZeroValue(t DataType) Value {
	return Value{Type: t}
}

// IsNumeric reports whether v is an integer or a real.
func (v Value) IsNumeric() bool {
	return v.Type == TypeInteger || v.Type == TypeReal
}

// Float returns the numeric value of v as a float64. Text yields 0.
func (v Value) Float() float64 {
	switch v.Type {
	case TypeInteger:
		return float64(v.I64)
	case TypeReal:
		return v.F64
	default:
		return 0
	}
}

// String formats v the way the shell prints it.
func (v Value) String() string {
	switch v.Type {
	case TypeInteger:
		return strconv.FormatInt(v.I64, 10)
	case TypeReal:
		s := strconv.FormatFloat(v.F64, 'f', -1, 64)
		if !strings.ContainsAny(s, ".NI") {
			s += ".0"
		}
		return s
	default:
		return v.S
	}
}

// Row is one decoded record, keyed by column name.
type Row map[string]Value

// Column describes metadata for a single column in a table.
type Column struct {
	Name       string
	Type       DataType
	PrimaryKey bool
	NotNull    bool
	Unique     bool
}

// TableSchema is the ordered column list of a table. Column order is the
// order fields are encoded in on disk.
type TableSchema struct {
	Name    string
	Columns []Column
}

// Column looks up a column by name.
func (s *TableSchema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in schema order.
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy of the schema.
func (s *TableSchema) Clone() *TableSchema {
	cols := make([]Column, len(s.Columns))
	copy(cols, s.Columns)
	return &TableSchema{Name: s.Name, Columns: cols}
}
