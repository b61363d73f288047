package plan

import (
	"sort"

	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// Direction is a sort direction for one Ordering.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Ordering is one ORDER BY key: an expression and the direction to sort it.
type Ordering struct {
	Expr      expr.Expr
	Direction Direction
}

// OrderBy buffers every row from child, then stably sorts by orderings in
// declared order. Nulls sort last for ASC, first for DESC.
type OrderBy struct {
	child     Node
	orderings []Ordering
}

// NewOrderBy wraps child, sorting its output by orderings.
func NewOrderBy(child Node, orderings []Ordering) *OrderBy {
	return &OrderBy{child: child, orderings: orderings}
}

func (n *OrderBy) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		var rows []rowctx.Context
		for ctx, err := range n.child.Execute(db) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			rows = append(rows, ctx)
		}

		keys := make([][]any, len(rows))
		var evalErr error
		for i, row := range rows {
			keys[i] = make([]any, len(n.orderings))
			for j, ord := range n.orderings {
				v, err := ord.Expr.Evaluate(row)
				if err != nil {
					evalErr = err
					break
				}
				keys[i][j] = v
			}
			if evalErr != nil {
				break
			}
		}
		if evalErr != nil {
			yieldErr(yield, evalErr)
			return
		}

		indices := make([]int, len(rows))
		for i := range indices {
			indices[i] = i
		}
		sort.SliceStable(indices, func(a, b int) bool {
			ia, ib := indices[a], indices[b]
			for j, ord := range n.orderings {
				cmp := compareOrderKeys(keys[ia][j], keys[ib][j], ord.Direction)
				if cmp != 0 {
					return cmp < 0
				}
			}
			return false
		})

		for _, idx := range indices {
			if !yield(rows[idx], nil) {
				return
			}
		}
	}
}

// compareOrderKeys orders a and b for one sort key, honoring the
// nulls-last-ASC / nulls-first-DESC placement for SQL NULL.
func compareOrderKeys(a, b any, dir Direction) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		if dir == Asc {
			return 1
		}
		return -1
	}
	if b == nil {
		if dir == Asc {
			return -1
		}
		return 1
	}

	cmp := compareAny(a, b)
	if dir == Desc {
		cmp = -cmp
	}
	return cmp
}

// compareAny provides a total order across the value shapes ColumnRef and
// Literal can produce: strings lexicographically, numerics by widened
// float64 value, booleans false<true. Mismatched or unorderable types
// compare equal, leaving relative order to the stable sort.
func compareAny(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av && bv:
				return -1
			default:
				return 1
			}
		}
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

func (n *OrderBy) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	return n.child.Schema(db)
}
