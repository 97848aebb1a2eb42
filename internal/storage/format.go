package storage

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

// Row encoding:
//
//	For each column, in schema order, no tags:
//	  INTEGER: int32 (little endian)
//	  REAL:    float64 (little endian)
//	  TEXT:    uint16 length + UTF-8 bytes
//
// A column missing from the row is written as its type's zero value.

const maxTextLen = math.MaxUint16

// EncodingError reports a value that cannot be stored.
type EncodingError struct {
	Column string
	Msg    string
}

func (e *EncodingError) Error() string {
	if e.Column == "" {
		return "encoding error: " + e.Msg
	}
	return fmt.Sprintf("encoding error in column %q: %s", e.Column, e.Msg)
}

func newEncodingError(column, format string, args ...any) *EncodingError {
	return &EncodingError{Column: column, Msg: fmt.Sprintf(format, args...)}
}

// EncodeRow serializes row in schema column order.
func EncodeRow(schema *sql.TableSchema, row sql.Row) ([]byte, error) {
	buf := make([]byte, 0, 64)
	for _, col := range schema.Columns {
		v, ok := row[col.Name]
		if !ok {
			v = sql.ZeroValue(col.Type)
		}
		v, err := CoerceValue(col, v)
		if err != nil {
			return nil, err
		}

		switch col.Type {
		case sql.TypeInteger:
			if v.I64 < math.MinInt32 || v.I64 > math.MaxInt32 {
				return nil, newEncodingError(col.Name, "integer %d out of 32-bit range", v.I64)
			}
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(v.I64)))
		case sql.TypeReal:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.F64))
		case sql.TypeText:
			if len(v.S) > maxTextLen {
				return nil, newEncodingError(col.Name, "text of %d bytes exceeds %d", len(v.S), maxTextLen)
			}
			if !utf8.ValidString(v.S) {
				return nil, newEncodingError(col.Name, "text is not valid UTF-8")
			}
			buf = binary.LittleEndian.AppendUint16(buf, uint16(len(v.S)))
			buf = append(buf, v.S...)
		default:
			return nil, newEncodingError(col.Name, "unsupported column type %v", col.Type)
		}
	}
	return buf, nil
}

// DecodeRow is the inverse of EncodeRow. It reports false for a buffer that
// is truncated, carries trailing bytes, or holds invalid UTF-8.
func DecodeRow(schema *sql.TableSchema, data []byte) (sql.Row, bool) {
	row := make(sql.Row, len(schema.Columns))
	off := 0
	for _, col := range schema.Columns {
		switch col.Type {
		case sql.TypeInteger:
			if off+4 > len(data) {
				return nil, false
			}
			row[col.Name] = sql.IntValue(int64(int32(binary.LittleEndian.Uint32(data[off:]))))
			off += 4
		case sql.TypeReal:
			if off+8 > len(data) {
				return nil, false
			}
			row[col.Name] = sql.RealValue(math.Float64frombits(binary.LittleEndian.Uint64(data[off:])))
			off += 8
		case sql.TypeText:
			if off+2 > len(data) {
				return nil, false
			}
			n := int(binary.LittleEndian.Uint16(data[off:]))
			off += 2
			if off+n > len(data) {
				return nil, false
			}
			s := string(data[off : off+n])
			if !utf8.ValidString(s) {
				return nil, false
			}
			row[col.Name] = sql.TextValue(s)
			off += n
		default:
			return nil, false
		}
	}
	if off != len(data) {
		return nil, false
	}
	return row, true
}

// CoerceValue converts v to col's type where that loses nothing a user would
// miss: integers widen to reals, and numbers become text. Everything else is
// an EncodingError.
func CoerceValue(col sql.Column, v sql.Value) (sql.Value, error) {
	if v.Type == col.Type {
		return v, nil
	}
	switch {
	case col.Type == sql.TypeReal && v.Type == sql.TypeInteger:
		return sql.RealValue(float64(v.I64)), nil
	case col.Type == sql.TypeText && v.IsNumeric():
		return sql.TextValue(v.String()), nil
	}
	return sql.Value{}, newEncodingError(col.Name, "cannot store %s value %s in %s column", v.Type, v, col.Type)
}
