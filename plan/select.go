package plan

import (
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// projectedColumn is one output column of a Select: its name and the
// expression that computes it.
type projectedColumn struct {
	name string
	expr expr.Expr
}

// Select projects child's rows to a new single-keyed context under rowKey
// (rowctx.RootKey by default). Expanding "*" into concrete column
// expressions is the planbuilder's job; Select itself only ever evaluates
// the explicit column list it's given.
type Select struct {
	child   Node
	rowKey  string
	columns []projectedColumn
	index   map[string]int
}

// NewSelect builds an empty projection over child, collapsing rows under
// rowKey (or rowctx.RootKey if rowKey is empty).
func NewSelect(child Node, rowKey string) *Select {
	if rowKey == "" {
		rowKey = rowctx.RootKey
	}
	return &Select{child: child, rowKey: rowKey, index: map[string]int{}}
}

// AddColumn appends a projected column; a duplicate name replaces the
// earlier entry in place rather than appending a second one.
func (n *Select) AddColumn(name string, e expr.Expr) *Select {
	if idx, ok := n.index[name]; ok {
		n.columns[idx] = projectedColumn{name: name, expr: e}
		return n
	}
	n.index[name] = len(n.columns)
	n.columns = append(n.columns, projectedColumn{name: name, expr: e})
	return n
}

func (n *Select) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		for ctx, err := range n.child.Execute(db) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			row := make(rowctx.Row, len(n.columns))
			var evalErr error
			for _, col := range n.columns {
				v, err := col.expr.Evaluate(ctx)
				if err != nil {
					evalErr = err
					break
				}
				row[col.name] = v
			}
			if evalErr != nil {
				if !yield(nil, evalErr) {
					return
				}
				continue
			}
			if !yield(rowctx.Context{n.rowKey: row}, nil) {
				return
			}
		}
	}
}

func (n *Select) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	out := dbschema.NewTableSchema(n.rowKey)
	cols := make([]dbschema.StoredColumn, 0, len(n.columns))
	for _, col := range n.columns {
		cols = append(cols, dbschema.NewColumn(col.name, col.expr.Type()))
	}
	return out.With(cols...)
}
