package storage

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

func usersSchema() *sql.TableSchema {
	return &sql.TableSchema{
		Name: "users",
		Columns: []sql.Column{
			{Name: "id", Type: sql.TypeInteger, PrimaryKey: true},
			{Name: "name", Type: sql.TypeText},
			{Name: "score", Type: sql.TypeReal},
		},
	}
}

func TestRowCodec_RoundTrip(t *testing.T) {
	schema := usersSchema()
	tests := []struct {
		name string
		row  sql.Row
	}{
		{"typical", sql.Row{"id": sql.IntValue(1), "name": sql.TextValue("Ali"), "score": sql.RealValue(9.5)}},
		{"zeros", sql.Row{"id": sql.IntValue(0), "name": sql.TextValue(""), "score": sql.RealValue(0)}},
		{"negative", sql.Row{"id": sql.IntValue(-42), "name": sql.TextValue("O'zbekiston"), "score": sql.RealValue(-0.25)}},
		{"int32 bounds low", sql.Row{"id": sql.IntValue(math.MinInt32), "name": sql.TextValue("min"), "score": sql.RealValue(math.SmallestNonzeroFloat64)}},
		{"int32 bounds high", sql.Row{"id": sql.IntValue(math.MaxInt32), "name": sql.TextValue("max"), "score": sql.RealValue(math.MaxFloat64)}},
		{"unicode", sql.Row{"id": sql.IntValue(7), "name": sql.TextValue("Тошкент 🌙"), "score": sql.RealValue(1e-9)}},
		{"max text", sql.Row{"id": sql.IntValue(3), "name": sql.TextValue(strings.Repeat("x", 65535)), "score": sql.RealValue(2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := EncodeRow(schema, tc.row)
			require.NoError(t, err)

			got, ok := DecodeRow(schema, data)
			require.True(t, ok)
			assert.Equal(t, tc.row, got)
		})
	}
}

func TestEncodeRow_Layout(t *testing.T) {
	data, err := EncodeRow(usersSchema(), sql.Row{
		"id":    sql.IntValue(-1),
		"name":  sql.TextValue("ab"),
		"score": sql.RealValue(1),
	})
	require.NoError(t, err)

	want := []byte{
		0xFF, 0xFF, 0xFF, 0xFF, // id int32 -1
		0x02, 0x00, 'a', 'b', // name len + bytes
		0, 0, 0, 0, 0, 0, 0xF0, 0x3F, // score 1.0
	}
	assert.Equal(t, want, data)
}

func TestEncodeRow_MissingColumnsAreZero(t *testing.T) {
	schema := usersSchema()
	data, err := EncodeRow(schema, sql.Row{"name": sql.TextValue("only")})
	require.NoError(t, err)

	got, ok := DecodeRow(schema, data)
	require.True(t, ok)
	assert.Equal(t, sql.Row{
		"id":    sql.IntValue(0),
		"name":  sql.TextValue("only"),
		"score": sql.RealValue(0),
	}, got)
}

func TestEncodeRow_Errors(t *testing.T) {
	schema := usersSchema()
	tests := []struct {
		name    string
		row     sql.Row
		wantCol string
	}{
		{"int overflow", sql.Row{"id": sql.IntValue(math.MaxInt32 + 1)}, "id"},
		{"int underflow", sql.Row{"id": sql.IntValue(math.MinInt32 - 1)}, "id"},
		{"text too long", sql.Row{"name": sql.TextValue(strings.Repeat("x", 65536))}, "name"},
		{"invalid utf8", sql.Row{"name": sql.TextValue("\xff\xfe")}, "name"},
		{"text into integer", sql.Row{"id": sql.TextValue("1")}, "id"},
		{"real into integer", sql.Row{"id": sql.RealValue(1.5)}, "id"},
		{"text into real", sql.Row{"score": sql.TextValue("high")}, "score"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeRow(schema, tc.row)
			var encErr *EncodingError
			require.True(t, errors.As(err, &encErr), "got %v", err)
			assert.Equal(t, tc.wantCol, encErr.Column)
		})
	}
}

func TestCoerceValue(t *testing.T) {
	realCol := sql.Column{Name: "r", Type: sql.TypeReal}
	textCol := sql.Column{Name: "t", Type: sql.TypeText}

	v, err := CoerceValue(realCol, sql.IntValue(3))
	require.NoError(t, err)
	assert.Equal(t, sql.RealValue(3), v)

	v, err = CoerceValue(textCol, sql.IntValue(42))
	require.NoError(t, err)
	assert.Equal(t, sql.TextValue("42"), v)

	v, err = CoerceValue(textCol, sql.RealValue(2))
	require.NoError(t, err)
	assert.Equal(t, sql.TextValue("2.0"), v)
}

func TestDecodeRow_Malformed(t *testing.T) {
	schema := usersSchema()
	good, err := EncodeRow(schema, sql.Row{"id": sql.IntValue(1), "name": sql.TextValue("Ali"), "score": sql.RealValue(1)})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated int", good[:3]},
		{"truncated text length", good[:5]},
		{"truncated text body", good[:8]},
		{"truncated real", good[:len(good)-1]},
		{"trailing bytes", append(append([]byte(nil), good...), 0)},
		{"text length past end", []byte{1, 0, 0, 0, 0xFF, 0xFF, 'a'}},
		{"invalid utf8", []byte{1, 0, 0, 0, 2, 0, 0xFF, 0xFE, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, ok := DecodeRow(schema, tc.data)
			assert.False(t, ok)
			assert.Nil(t, row)
		})
	}
}

func TestEncodingError_Message(t *testing.T) {
	err := &EncodingError{Column: "id", Msg: "integer 5000000000 out of 32-bit range"}
	assert.Equal(t, `encoding error in column "id": integer 5000000000 out of 32-bit range`, err.Error())

	err = &EncodingError{Msg: "row too large"}
	assert.Equal(t, "encoding error: row too large", err.Error())
}
