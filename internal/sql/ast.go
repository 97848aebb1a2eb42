package sql

// Statement is the common interface for all parsed statements. The set of
// implementations is closed: *CreateTableStmt, *InsertStmt, *SelectStmt,
// *UpdateStmt and *DeleteStmt.
type Statement interface {
	stmtNode()
}

// Expr is the common interface for expression nodes: *Literal, *ColumnRef,
// *Wildcard, *Comparison and *BooleanExpr.
type Expr interface {
	exprNode()
}

// CompareOp is a comparison operator.
type CompareOp string

const (
	OpEq CompareOp = "="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpGt CompareOp = ">"
	OpLe CompareOp = "<="
	OpGe CompareOp = ">="
)

// LogicalOp joins two predicates.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// Literal is a constant number or string.
type Literal struct {
	Value Value
}

// ColumnRef names a column of the table being queried.
type ColumnRef struct {
	Name string
}

// Wildcard is the * in SELECT *.
type Wildcard struct{}

// Comparison is "left op right".
type Comparison struct {
	Left  Expr
	Op    CompareOp
	Right Expr
}

// BooleanExpr is "left AND right" or "left OR right".
type BooleanExpr struct {
	Left  Expr
	Op    LogicalOp
	Right Expr
}

func (*Literal) exprNode()     {}
func (*ColumnRef) exprNode()   {}
func (*Wildcard) exprNode()    {}
func (*Comparison) exprNode()  {}
func (*BooleanExpr) exprNode() {}

// CreateTableStmt represents a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	TableName string
	Columns   []Column
}

// InsertStmt represents INSERT INTO t (c1, c2) VALUES (v1, v2).
// Columns and Values pair up by position.
type InsertStmt struct {
	TableName string
	Columns   []string
	Values    []Value
}

// OrderKey is one ORDER BY term.
type OrderKey struct {
	Column string
	Desc   bool
}

// SelectStmt represents a SELECT query. Columns holds either a single
// *Wildcard or one *ColumnRef per selected column. Where is nil when absent,
// Limit is nil when absent.
type SelectStmt struct {
	Columns   []Expr
	TableName string
	Where     Expr
	OrderBy   []OrderKey
	Limit     *int
}

// IsWildcard reports whether the query selects every column.
func (s *SelectStmt) IsWildcard() bool {
	for _, c := range s.Columns {
		if _, ok := c.(*Wildcard); ok {
			return true
		}
	}
	return false
}

// ColumnNames returns the names in the select list, skipping the wildcard.
func (s *SelectStmt) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if ref, ok := c.(*ColumnRef); ok {
			names = append(names, ref.Name)
		}
	}
	return names
}

// Assignment is one "col = value" in an UPDATE SET list.
type Assignment struct {
	Column string
	Value  Value
}

// UpdateStmt represents UPDATE t SET c = v [WHERE ...].
type UpdateStmt struct {
	TableName   string
	Assignments []Assignment
	Where       Expr
}

// DeleteStmt represents DELETE FROM t [WHERE ...].
type DeleteStmt struct {
	TableName string
	Where     Expr
}

func (*CreateTableStmt) stmtNode() {}
func (*InsertStmt) stmtNode()      {}
func (*SelectStmt) stmtNode()      {}
func (*UpdateStmt) stmtNode()      {}
func (*DeleteStmt) stmtNode()      {}

// WalkColumns calls fn for every column reference inside expr.
func WalkColumns(expr Expr, fn func(name string)) {
	switch e := expr.(type) {
	case *ColumnRef:
		fn(e.Name)
	case *Comparison:
		WalkColumns(e.Left, fn)
		WalkColumns(e.Right, fn)
	case *BooleanExpr:
		WalkColumns(e.Left, fn)
		WalkColumns(e.Right, fn)
	}
}
