// Package sqlast defines the internal AST shape planbuilder consumes: a
// small tagged union independent of any particular SQL parser library, so
// swapping the parser never touches planbuilder. astconv is the only
// package that knows about the underlying parser's own AST types.
package sqlast

// Statement is one parsed SQL statement, discriminated by Kind.
type Statement struct {
	Kind StatementKind

	// Create
	CreateTable string
	Columns     []ColumnDef

	// Insert
	InsertTable   string
	InsertColumns []string
	InsertValues  *Expr // an expr_list Expr

	// Select
	From    []FromItem
	Where   *Expr
	OrderBy []OrderByItem
	Limit   *Expr
	Select  []SelectItem

	// Unsupported-clause markers, set when the parser found one so
	// planbuilder can raise NotImplementedError with a specific feature name.
	HasGroupBy  bool
	HasHaving   bool
	HasDistinct bool
	HasWith     bool
	HasWindow   bool
}

type StatementKind string

const (
	StatementCreate  StatementKind = "create"
	StatementInsert  StatementKind = "insert"
	StatementReplace StatementKind = "replace"
	StatementSelect  StatementKind = "select"
)

// ColumnDef is one column in a CREATE TABLE statement.
type ColumnDef struct {
	Name    string
	SQLType string
}

// FromItem is one table reference in a FROM clause; Alias is empty unless
// the SQL gave one explicitly. JoinOn is nil for the first FROM entry and
// must be non-nil for every subsequent one (each additional table must be an
// explicit JOIN ... ON).
type FromItem struct {
	Table  string
	Alias  string
	JoinOn *Expr
}

// OrderByItem is one ORDER BY key.
type OrderByItem struct {
	Expr *Expr
	Desc bool
}

// SelectItem is one projected expression, with an optional explicit alias.
type SelectItem struct {
	Expr  *Expr
	Alias string
	Star  bool // true for "*" or "table.*"; Expr is nil in this case
}

// ExprKind discriminates the tagged union of expression shapes the parser
// can produce, matching the AST contract's expression kinds.
type ExprKind string

const (
	ExprColumnRef ExprKind = "column_ref"
	ExprNumber    ExprKind = "number"
	ExprString    ExprKind = "single_quote_string"
	ExprBinary    ExprKind = "binary_expr"
	ExprAggrFunc  ExprKind = "aggr_func"
	ExprFunction  ExprKind = "function"
	ExprList      ExprKind = "expr_list"
)

// Expr is one node of the expression tree, discriminated by Kind.
type Expr struct {
	Kind ExprKind

	// column_ref
	Table  string
	Column string

	// number / single_quote_string
	Literal string

	// binary_expr
	Operator string
	Left     *Expr
	Right    *Expr

	// aggr_func: name ∈ {MAX, COUNT, ARRAY_AGG}; Distinct is COUNT(DISTINCT
	// ...), rejected by planbuilder since DISTINCT is out of scope.
	FuncName string
	Args     []*Expr
	Distinct bool

	// function: qualified name parts, e.g. {"ARRAY_AGG"} or {"pg","foo"}.
	FuncNameParts []string

	// expr_list
	List []*Expr
}
