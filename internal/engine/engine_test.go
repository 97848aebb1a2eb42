package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/catalog"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage/filestore"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage/memstore"
)

func newTestEngine(t *testing.T, provider storage.Provider) *DBEngine {
	t.Helper()
	eng := New(provider)
	require.NoError(t, eng.Start(context.Background()))
	return eng
}

func mustExec(t *testing.T, eng *DBEngine, query string) *Result {
	t.Helper()
	res, err := eng.Execute(query)
	require.NoError(t, err, query)
	return res
}

// seedUsers creates users(id, ism, yosh) with the given ages, ids 1..n.
func seedUsers(t *testing.T, eng *DBEngine, ages ...int) {
	t.Helper()
	mustExec(t, eng, "JADVAL_YARAT users (id BUTUN_SON ASOSIY_KALIT, ism MATN, yosh BUTUN_SON)")
	names := []string{"Ali", "Vali", "Malika", "Sardor", "Nilufar", "Jasur", "Dilnoza"}
	for i, age := range ages {
		mustExec(t, eng, fmt.Sprintf("QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (%d, '%s', %d)", i+1, names[i%len(names)], age))
	}
}

func ages(rows []sql.Row) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r["yosh"].I64
	}
	return out
}

func TestEngine_NotStarted(t *testing.T) {
	eng := New(memstore.New())

	_, err := eng.Execute("SELECT * FROM t")
	assert.Error(t, err)
	_, err = eng.ListTables()
	assert.Error(t, err)

	require.NoError(t, eng.Start(context.Background()))
	assert.Error(t, eng.Start(context.Background()), "second Start must fail")
}

func TestEngine_Lifecycle(t *testing.T) {
	eng := newTestEngine(t, memstore.New())

	res := mustExec(t, eng, "CREATE TABLE t (id Integer PrimaryKey, name Text)")
	assert.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, "table created: t", res.Message)

	res = mustExec(t, eng, "INSERT INTO t (id, name) VALUES (1, 'Ali')")
	assert.Equal(t, "1 row inserted", res.Message)
	assert.Equal(t, 1, res.RowsAffected)

	res = mustExec(t, eng, "SELECT * FROM t")
	assert.Equal(t, ResultRows, res.Kind)
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	assert.Equal(t, []sql.Row{{"id": sql.IntValue(1), "name": sql.TextValue("Ali")}}, res.Rows)

	_, err := eng.Execute("CREATE TABLE t (x Text)")
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.True(t, errors.Is(err, ErrTableExists))
	assert.Equal(t, "t", schemaErr.Table)

	// The failed create left the table alone.
	res = mustExec(t, eng, "SELECT * FROM t")
	assert.Len(t, res.Rows, 1)
}

func TestEngine_UnknownTable(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25, 30)

	for _, q := range []string{
		"SELECT * FROM ghost",
		"INSERT INTO ghost (a) VALUES (1)",
		"UPDATE ghost SET a = 1",
		"DELETE FROM ghost",
	} {
		_, err := eng.Execute(q)
		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr), q)
		assert.True(t, errors.Is(err, ErrTableNotFound), q)
		assert.Contains(t, err.Error(), "ghost", q)
	}

	res := mustExec(t, eng, "SELECT * FROM users")
	assert.Equal(t, []int64{25, 30}, ages(res.Rows))
}

func TestEngine_FilterByAge(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25, 30, 28, 35, 22)

	res := mustExec(t, eng, "SELECT * FROM users WHERE yosh > 25")
	assert.ElementsMatch(t, []int64{30, 28, 35}, ages(res.Rows))
	assert.Equal(t, 5, res.Stats.Rows)
	assert.Equal(t, 0, res.Stats.Skipped)
}

func TestEngine_SortAndLimit(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25, 30, 28, 22, 35)

	res := mustExec(t, eng, "SELECT ism, yosh FROM users ORDER BY yosh DESCENDING LIMIT 3")
	assert.Equal(t, []string{"ism", "yosh"}, res.Columns)
	assert.Equal(t, []int64{35, 30, 28}, ages(res.Rows))
	for _, r := range res.Rows {
		assert.Len(t, r, 2, "projection keeps only requested columns")
		assert.NotContains(t, r, "id")
	}

	res = mustExec(t, eng, "TANLASH * JADVALDAN users TARTIBLA yosh KAMAYISH CHEGARA 3")
	assert.Equal(t, []int64{35, 30, 28}, ages(res.Rows))
}

func TestEngine_SortIsStableAndMultiKey(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	mustExec(t, eng, "CREATE TABLE p (id INTEGER, grp TEXT, score REAL)")
	for _, q := range []string{
		"INSERT INTO p (id, grp, score) VALUES (1, 'b', 2.5)",
		"INSERT INTO p (id, grp, score) VALUES (2, 'a', 1.0)",
		"INSERT INTO p (id, grp, score) VALUES (3, 'b', 2.5)",
		"INSERT INTO p (id, grp, score) VALUES (4, 'a', 3.0)",
		"INSERT INTO p (id, grp, score) VALUES (5, 'b', 0.5)",
	} {
		mustExec(t, eng, q)
	}

	ids := func(rows []sql.Row) []int64 {
		var out []int64
		for _, r := range rows {
			out = append(out, r["id"].I64)
		}
		return out
	}

	// Ties on score keep insertion order.
	res := mustExec(t, eng, "SELECT id FROM p ORDER BY score DESC")
	assert.Equal(t, []int64{4, 1, 3, 2, 5}, ids(res.Rows))

	// The first key wins, the second breaks ties.
	res = mustExec(t, eng, "SELECT id, grp FROM p ORDER BY grp, score DESC")
	assert.Equal(t, []int64{4, 2, 1, 3, 5}, ids(res.Rows))
}

func TestEngine_LimitEdges(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 1, 2, 3)

	assert.Empty(t, mustExec(t, eng, "SELECT * FROM users LIMIT 0").Rows)
	assert.Len(t, mustExec(t, eng, "SELECT * FROM users LIMIT 10").Rows, 3)
}

func TestEngine_WhereBooleanLogic(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25, 30, 28, 35, 22)

	tests := []struct {
		where string
		want  []int64
	}{
		{"yosh >= 28 AND yosh <= 30", []int64{30, 28}},
		{"yosh < 23 OR yosh > 34", []int64{35, 22}},
		{"ism = 'Ali' OR yosh = 28 AND id = 3", []int64{25, 28}},
		{"yosh != 25", []int64{30, 28, 35, 22}},
		{"yosh <> 25 VA ism = 'Vali'", []int64{30}},
		{"30 = yosh", []int64{30}},
		{"ism >= 'N'", []int64{30, 35, 22}},
	}
	for _, tc := range tests {
		t.Run(tc.where, func(t *testing.T) {
			res := mustExec(t, eng, "SELECT * FROM users WHERE "+tc.where)
			assert.Equal(t, tc.want, ages(res.Rows))
		})
	}
}

func TestEngine_CrossTypeComparison(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25, 30)

	// Numbers rank below text, so every integer age is < any string.
	res := mustExec(t, eng, "SELECT * FROM users WHERE yosh < 'a'")
	assert.Len(t, res.Rows, 2)
	res = mustExec(t, eng, "SELECT * FROM users WHERE yosh = '25'")
	assert.Empty(t, res.Rows)

	// Integers and reals compare numerically.
	res = mustExec(t, eng, "SELECT * FROM users WHERE yosh > 29.5")
	assert.Equal(t, []int64{30}, ages(res.Rows))
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		a, b sql.Value
		want int
	}{
		{sql.IntValue(1), sql.IntValue(2), -1},
		{sql.IntValue(2), sql.RealValue(2.0), 0},
		{sql.RealValue(2.5), sql.IntValue(2), 1},
		{sql.IntValue(1000), sql.TextValue(""), -1},
		{sql.TextValue("a"), sql.RealValue(-1), 1},
		{sql.TextValue("abc"), sql.TextValue("abd"), -1},
		{sql.TextValue("b"), sql.TextValue("b"), 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, compareValues(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func TestEvaluate_OtherShapesAreTrue(t *testing.T) {
	row := sql.Row{"a": sql.IntValue(1)}
	assert.True(t, evaluate(&sql.ColumnRef{Name: "a"}, row))
	assert.True(t, evaluate(&sql.Literal{Value: sql.IntValue(0)}, row))
	assert.False(t, evaluate(&sql.Comparison{Left: &sql.ColumnRef{Name: "missing"}, Op: sql.OpEq, Right: &sql.Literal{}}, row))
}

func TestEngine_UnknownColumns(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25)

	for _, q := range []string{
		"SELECT nope FROM users",
		"SELECT * FROM users WHERE nope = 1",
		"SELECT * FROM users ORDER BY nope",
		"INSERT INTO users (id, nope) VALUES (2, 1)",
		"UPDATE users SET nope = 1",
		"UPDATE users SET yosh = 1 WHERE nope = 2",
		"DELETE FROM users WHERE nope = 1",
	} {
		_, err := eng.Execute(q)
		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr), q)
		assert.True(t, errors.Is(err, ErrUnknownColumn), q)
		assert.Equal(t, "nope", schemaErr.Column, q)
	}
}

func TestEngine_InsertValidation(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	mustExec(t, eng, "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT NOT NULL, note TEXT)")

	tests := []struct {
		name  string
		query string
	}{
		{"count mismatch", "INSERT INTO t (id, name) VALUES (1)"},
		{"duplicate column", "INSERT INTO t (id, id, name) VALUES (1, 2, 'x')"},
		{"missing primary key", "INSERT INTO t (name) VALUES ('x')"},
		{"missing not null", "INSERT INTO t (id) VALUES (1)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.Execute(tc.query)
			var schemaErr *SchemaError
			assert.True(t, errors.As(err, &schemaErr), "got %v", err)
		})
	}

	// Optional columns default to the zero value.
	mustExec(t, eng, "INSERT INTO t (id, name) VALUES (1, 'x')")
	res := mustExec(t, eng, "SELECT note FROM t")
	assert.Equal(t, []sql.Row{{"note": sql.TextValue("")}}, res.Rows)
}

func TestEngine_InsertEncodingErrors(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	mustExec(t, eng, "CREATE TABLE t (id INTEGER, score REAL, name TEXT)")

	for _, q := range []string{
		"INSERT INTO t (id) VALUES (5000000000)",
		"INSERT INTO t (id) VALUES ('abc')",
		"INSERT INTO t (id) VALUES (1.5)",
		"INSERT INTO t (score) VALUES ('high')",
		"INSERT INTO t (name) VALUES ('" + strings.Repeat("x", storage.MaxRowSize) + "')",
	} {
		_, err := eng.Execute(q)
		var encErr *storage.EncodingError
		assert.True(t, errors.As(err, &encErr), "%.60s: got %v", q, err)
	}
	assert.Empty(t, mustExec(t, eng, "SELECT * FROM t").Rows)

	// Widening conversions are accepted.
	mustExec(t, eng, "INSERT INTO t (id, score, name) VALUES (1, 2, 3)")
	res := mustExec(t, eng, "SELECT * FROM t")
	assert.Equal(t, []sql.Row{{
		"id":    sql.IntValue(1),
		"score": sql.RealValue(2),
		"name":  sql.TextValue("3"),
	}}, res.Rows)
}

func TestEngine_ParseErrorsPassThrough(t *testing.T) {
	eng := newTestEngine(t, memstore.New())

	_, err := eng.Execute("SELECT * FROM t WHERE a = 'open")
	var lexErr *sql.LexicalError
	assert.True(t, errors.As(err, &lexErr))

	_, err = eng.Execute("SELECT FROM t")
	var synErr *sql.SyntaxError
	assert.True(t, errors.As(err, &synErr))
}

func TestEngine_ScanCompletenessAcrossPages(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	mustExec(t, eng, "CREATE TABLE logs (n INTEGER, msg TEXT)")

	const n = 120
	msg := strings.Repeat("m", 200)
	for i := 0; i < n; i++ {
		mustExec(t, eng, fmt.Sprintf("INSERT INTO logs (n, msg) VALUES (%d, '%s')", i, msg))
	}

	res := mustExec(t, eng, "SELECT * FROM logs")
	require.Len(t, res.Rows, n)
	assert.Greater(t, res.Stats.Pages, 1)
	assert.Equal(t, n, res.Stats.Rows)
	for i, r := range res.Rows {
		assert.Equal(t, int64(i), r["n"].I64)
	}
}

func TestEngine_UpdateAndDelete(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25, 30, 28, 35, 22)

	res := mustExec(t, eng, "UPDATE users SET yosh = 40, ism = 'Katta' WHERE yosh > 29")
	assert.Equal(t, "2 row(s) updated", res.Message)
	assert.Equal(t, 2, res.RowsAffected)

	res = mustExec(t, eng, "SELECT * FROM users WHERE yosh = 40")
	require.Len(t, res.Rows, 2)
	for _, r := range res.Rows {
		assert.Equal(t, "Katta", r["ism"].S)
	}

	res = mustExec(t, eng, "DELETE FROM users WHERE yosh = 40")
	assert.Equal(t, "2 row(s) deleted", res.Message)
	assert.Equal(t, []int64{25, 28, 22}, ages(mustExec(t, eng, "SELECT * FROM users").Rows))

	res = mustExec(t, eng, "UPDATE users SET yosh = 1 WHERE id = 99")
	assert.Equal(t, "0 row(s) updated", res.Message)

	res = mustExec(t, eng, "YANGILASH users BELGILASH yosh = 18")
	assert.Equal(t, 3, res.RowsAffected)

	res = mustExec(t, eng, "O'CHIR users")
	assert.Equal(t, "3 row(s) deleted", res.Message)
	assert.Empty(t, mustExec(t, eng, "SELECT * FROM users").Rows)

	// The table is still usable after being emptied.
	mustExec(t, eng, "INSERT INTO users (id, ism, yosh) VALUES (9, 'Yangi', 20)")
	assert.Len(t, mustExec(t, eng, "SELECT * FROM users").Rows, 1)
}

func TestEngine_UpdateValidation(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng, 25)

	_, err := eng.Execute("UPDATE users SET yosh = 1, yosh = 2")
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	_, err = eng.Execute("UPDATE users SET yosh = 'old'")
	var encErr *storage.EncodingError
	assert.True(t, errors.As(err, &encErr))

	assert.Equal(t, []int64{25}, ages(mustExec(t, eng, "SELECT * FROM users").Rows))
}

func TestEngine_SkippedRowsAreCounted(t *testing.T) {
	store := memstore.New()
	eng := newTestEngine(t, store)
	seedUsers(t, eng, 25, 30)

	// Append a row that does not decode under the users schema.
	b, err := store.Open("users" + tableFileSuffix)
	require.NoError(t, err)
	tbl, err := storage.OpenTable(b, nil)
	require.NoError(t, err)
	_, err = tbl.Append([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, tbl.Flush())

	eng = newTestEngine(t, store)
	res := mustExec(t, eng, "SELECT * FROM users")
	assert.Equal(t, []int64{25, 30}, ages(res.Rows))
	assert.Equal(t, ScanStats{Pages: 1, Rows: 2, Skipped: 1}, res.Stats)

	// Delete without WHERE leaves the unreadable row in place.
	res = mustExec(t, eng, "DELETE FROM users")
	assert.Equal(t, 2, res.RowsAffected)
	assert.Equal(t, 1, res.Stats.Skipped)

	res = mustExec(t, eng, "SELECT * FROM users")
	assert.Empty(t, res.Rows)
	assert.Equal(t, 1, res.Stats.Skipped)
}

func TestEngine_ReopenFromDisk(t *testing.T) {
	dir := t.TempDir()

	fs, err := filestore.New(dir)
	require.NoError(t, err)
	eng := newTestEngine(t, fs)
	seedUsers(t, eng, 25, 30, 28)
	mustExec(t, eng, "CREATE TABLE empty_one (x MATN BOSH_EMAS)")
	mustExec(t, eng, "DELETE FROM users WHERE yosh = 30")

	fs2, err := filestore.New(dir)
	require.NoError(t, err)
	eng2 := newTestEngine(t, fs2)

	names, err := eng2.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "empty_one"}, names)

	schema, err := eng2.TableSchema("empty_one")
	require.NoError(t, err)
	assert.Equal(t, []sql.Column{{Name: "x", Type: sql.TypeText, NotNull: true}}, schema.Columns)

	res := mustExec(t, eng2, "SELECT * FROM users")
	assert.Equal(t, []int64{25, 28}, ages(res.Rows))
}

func TestEngine_StartFailsOnCorruptCatalog(t *testing.T) {
	store := memstore.New()
	store.Put(catalog.MetadataName, []byte("users|id:BOOLEAN\n"))

	eng := New(store)
	assert.Error(t, eng.Start(context.Background()))
}

func TestEngine_StartHonoursCancelledContext(t *testing.T) {
	store := memstore.New()
	seedUsers(t, newTestEngine(t, store), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(store).Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_TableSchemaIsCopy(t *testing.T) {
	eng := newTestEngine(t, memstore.New())
	seedUsers(t, eng)

	s, err := eng.TableSchema("users")
	require.NoError(t, err)
	s.Columns[0].Name = "changed"

	again, err := eng.TableSchema("users")
	require.NoError(t, err)
	assert.Equal(t, "id", again.Columns[0].Name)

	_, err = eng.TableSchema("ghost")
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestEngine_CreateRejectsDuplicateColumns(t *testing.T) {
	store := memstore.New()
	eng := newTestEngine(t, store)

	_, err := eng.Execute("CREATE TABLE t (a TEXT, a INTEGER)")
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "a", schemaErr.Column)

	names, _ := eng.ListTables()
	assert.Empty(t, names)
	assert.Nil(t, store.Bytes("t"+tableFileSuffix))
}

func TestSchemaError_Message(t *testing.T) {
	assert.Equal(t, `schema error: table "ghost": table not found`, tableNotFound("ghost").Error())
	assert.Equal(t, `schema error: table "t", column "c": unknown column`, unknownColumn("t", "c").Error())
	assert.Equal(t, `schema error: table "t": 1 columns but 2 values`, schemaErrorf("t", "", "%d columns but %d values", 1, 2).Error())
}

// failingProvider wraps a memstore and makes table backends fail their
// writes once fail is set.
type failingProvider struct {
	*memstore.Store
	fail *bool
}

func (p failingProvider) Open(name string) (storage.Backend, error) {
	b, err := p.Store.Open(name)
	if err != nil {
		return nil, err
	}
	return failingBackend{Backend: b, fail: p.fail}, nil
}

type failingBackend struct {
	storage.Backend
	fail *bool
}

func (b failingBackend) Store(data []byte) error {
	if *b.fail {
		return errors.New("disk full")
	}
	return b.Backend.Store(data)
}

func TestEngine_FailedInsertLeavesNoRow(t *testing.T) {
	fail := false
	eng := newTestEngine(t, failingProvider{Store: memstore.New(), fail: &fail})
	seedUsers(t, eng, 25)

	fail = true
	_, err := eng.Execute("QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (2, 'Vali', 30)")
	require.Error(t, err)
	fail = false

	res := mustExec(t, eng, "TANLASH * JADVALDAN users")
	assert.Equal(t, []int64{25}, ages(res.Rows))
}
