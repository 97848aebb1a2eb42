package engine

import (
	"cmp"
	"strings"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

// filterRows keeps the rows the predicate accepts.
func filterRows(rows []sql.Row, where sql.Expr) []sql.Row {
	out := rows[:0]
	for _, r := range rows {
		if evaluate(where, r) {
			out = append(out, r)
		}
	}
	return out
}

// matches is evaluate with a missing predicate accepting every row.
func matches(where sql.Expr, row sql.Row) bool {
	return where == nil || evaluate(where, row)
}

// evaluate decides whether row satisfies expr. Both sides of AND/OR are
// always evaluated. Shapes other than comparisons and boolean operators
// evaluate to true.
func evaluate(expr sql.Expr, row sql.Row) bool {
	switch e := expr.(type) {
	case *sql.Comparison:
		left, ok := operand(e.Left, row)
		if !ok {
			return false
		}
		right, ok := operand(e.Right, row)
		if !ok {
			return false
		}
		c := compareValues(left, right)
		switch e.Op {
		case sql.OpEq:
			return c == 0
		case sql.OpNe:
			return c != 0
		case sql.OpLt:
			return c < 0
		case sql.OpGt:
			return c > 0
		case sql.OpLe:
			return c <= 0
		case sql.OpGe:
			return c >= 0
		}
		return false
	case *sql.BooleanExpr:
		left := evaluate(e.Left, row)
		right := evaluate(e.Right, row)
		if e.Op == sql.OpAnd {
			return left && right
		}
		return left || right
	default:
		return true
	}
}

// operand resolves one side of a comparison.
func operand(expr sql.Expr, row sql.Row) (sql.Value, bool) {
	switch e := expr.(type) {
	case *sql.Literal:
		return e.Value, true
	case *sql.ColumnRef:
		v, ok := row[e.Name]
		return v, ok
	default:
		return sql.Value{}, false
	}
}

// compareValues is the total order used by WHERE and ORDER BY. Integers and
// reals compare numerically, every number sorts before every text, and texts
// compare bytewise.
func compareValues(a, b sql.Value) int {
	switch {
	case a.Type == sql.TypeInteger && b.Type == sql.TypeInteger:
		return cmp.Compare(a.I64, b.I64)
	case a.IsNumeric() && b.IsNumeric():
		return cmp.Compare(a.Float(), b.Float())
	case a.IsNumeric():
		return -1
	case b.IsNumeric():
		return 1
	default:
		return strings.Compare(a.S, b.S)
	}
}

// projectRows keeps only cols, in that order.
func projectRows(rows []sql.Row, cols []string) []sql.Row {
	out := make([]sql.Row, len(rows))
	for i, r := range rows {
		proj := make(sql.Row, len(cols))
		for _, c := range cols {
			if v, ok := r[c]; ok {
				proj[c] = v
			}
		}
		out[i] = proj
	}
	return out
}
