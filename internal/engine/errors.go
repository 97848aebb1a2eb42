package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTableExists   = errors.New("table already exists")
	ErrTableNotFound = errors.New("table not found")
	ErrUnknownColumn = errors.New("unknown column")
)

// SchemaError reports a statement that does not fit the catalog: a missing
// or duplicate table, or a column the table does not have.
type SchemaError struct {
	Table  string
	Column string
	Msg    string
	Err    error
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema error: table ")
	sb.WriteString(fmt.Sprintf("%q", e.Table))
	if e.Column != "" {
		sb.WriteString(fmt.Sprintf(", column %q", e.Column))
	}
	sb.WriteString(": ")
	switch {
	case e.Msg != "":
		sb.WriteString(e.Msg)
	case e.Err != nil:
		sb.WriteString(e.Err.Error())
	default:
		sb.WriteString("invalid")
	}
	return sb.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }

func tableNotFound(table string) error {
	return &SchemaError{Table: table, Err: ErrTableNotFound}
}

func unknownColumn(table, column string) error {
	return &SchemaError{Table: table, Column: column, Err: ErrUnknownColumn}
}

func schemaErrorf(table, column, format string, args ...any) error {
	return &SchemaError{Table: table, Column: column, Msg: fmt.Sprintf(format, args...)}
}
