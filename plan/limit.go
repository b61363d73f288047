package plan

import (
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// Limit emits at most the first n rows of child, preserving order.
type Limit struct {
	child Node
	n     int
}

// NewLimit wraps child, truncating its output to n rows. n must be
// non-negative; the planbuilder is responsible for rejecting non-literal or
// negative LIMIT clauses before constructing this node.
func NewLimit(child Node, n int) *Limit {
	return &Limit{child: child, n: n}
}

func (n *Limit) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		if n.n <= 0 {
			return
		}
		count := 0
		for ctx, err := range n.child.Execute(db) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(ctx, nil) {
				return
			}
			count++
			if count >= n.n {
				return
			}
		}
	}
}

func (n *Limit) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	return n.child.Schema(db)
}
