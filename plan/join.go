package plan

import (
	"fmt"

	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// Join is a nested-loop inner join: the right side is executed again for
// each left row, onExpr is evaluated against the merged context, and matching
// rows are emitted left-then-right in input order. A constant-true onExpr
// yields the cross product.
type Join struct {
	left, right Node
	onExpr      expr.Expr
}

// NewJoin builds a nested-loop join of left and right on onExpr.
func NewJoin(left, right Node, onExpr expr.Expr) *Join {
	return &Join{left: left, right: right, onExpr: onExpr}
}

func (n *Join) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		for lctx, err := range n.left.Execute(db) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			for rctx, err := range n.right.Execute(db) {
				if err != nil {
					if !yield(nil, err) {
						return
					}
					continue
				}
				merged := rowctx.Merge(lctx, rctx)
				v, err := n.onExpr.Evaluate(merged)
				if err != nil {
					if !yield(nil, err) {
						return
					}
					continue
				}
				matched, ok := v.(bool)
				if !ok || !matched {
					continue
				}
				if !yield(merged, nil) {
					return
				}
			}
		}
	}
}

func (n *Join) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	leftSchema, err := n.left.Schema(db)
	if err != nil {
		return nil, err
	}
	rightSchema, err := n.right.Schema(db)
	if err != nil {
		return nil, err
	}
	out := dbschema.NewTableSchema(fmt.Sprintf("%s_join_%s", leftSchema.Name(), rightSchema.Name()))
	out, err = out.With(leftSchema.StoredColumns()...)
	if err != nil {
		return nil, err
	}
	out, err = out.With(rightSchema.StoredColumns()...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
