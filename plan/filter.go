package plan

import (
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// Filter passes a row from child only when predicate evaluates to exactly
// true; a nil (SQL NULL) or false result drops the row.
type Filter struct {
	child     Node
	predicate expr.Expr
}

// NewFilter wraps child, keeping only rows where predicate is true.
func NewFilter(child Node, predicate expr.Expr) *Filter {
	return &Filter{child: child, predicate: predicate}
}

func (n *Filter) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		for ctx, err := range n.child.Execute(db) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			v, err := n.predicate.Evaluate(ctx)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			keep, ok := v.(bool)
			if !ok || !keep {
				continue
			}
			if !yield(ctx, nil) {
				return
			}
		}
	}
}

func (n *Filter) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	return n.child.Schema(db)
}
