package plan

import (
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// Aggregation accumulates one value across every row of a child stream.
type Aggregation interface {
	// Add folds one row's context into the running accumulation.
	Add(ctx rowctx.Context) error
	// Result returns the accumulated value once every row has been added.
	Result() any
	// Describe renders a human-readable form, used as the output column's
	// fallback name when no alias was given.
	Describe() string
	// Type reports the static type of Result().
	Type() coltype.Type
}

// MultiAggregation maps an output column name to the aggregation that
// computes it. Order is preserved for deterministic output-schema column
// order.
type MultiAggregation struct {
	names []string
	aggs  []Aggregation
}

// NewMultiAggregation builds an empty aggregation set.
func NewMultiAggregation() *MultiAggregation {
	return &MultiAggregation{}
}

// Add registers agg under name. A duplicate name replaces the earlier entry.
func (m *MultiAggregation) Add(name string, agg Aggregation) *MultiAggregation {
	for i, n := range m.names {
		if n == name {
			m.aggs[i] = agg
			return m
		}
	}
	m.names = append(m.names, name)
	m.aggs = append(m.aggs, agg)
	return m
}

// Aggregate consumes the entire child stream, then emits exactly one row
// whose fields are every registered aggregation's result, keyed under
// rowctx.RootKey.
type Aggregate struct {
	child Node
	multi *MultiAggregation
}

// NewAggregate wraps child, computing multi over its full output.
func NewAggregate(child Node, multi *MultiAggregation) *Aggregate {
	return &Aggregate{child: child, multi: multi}
}

func (n *Aggregate) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		for ctx, err := range n.child.Execute(db) {
			if err != nil {
				yieldErr(yield, err)
				return
			}
			for _, agg := range n.multi.aggs {
				if err := agg.Add(ctx); err != nil {
					yieldErr(yield, err)
					return
				}
			}
		}

		row := make(rowctx.Row, len(n.multi.names))
		for i, name := range n.multi.names {
			row[name] = n.multi.aggs[i].Result()
		}
		yield(rowctx.Context{rowctx.RootKey: row}, nil)
	}
}

func (n *Aggregate) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	out := dbschema.NewTableSchema(rowctx.RootKey)
	cols := make([]dbschema.StoredColumn, 0, len(n.multi.names))
	for i, name := range n.multi.names {
		cols = append(cols, dbschema.NewColumn(name, n.multi.aggs[i].Type()))
	}
	return out.With(cols...)
}

// CountAggregation counts every row passed to Add, regardless of any
// expression's nullness.
type CountAggregation struct {
	count int32
}

func NewCountAggregation() *CountAggregation { return &CountAggregation{} }

func (a *CountAggregation) Add(rowctx.Context) error { a.count++; return nil }
func (a *CountAggregation) Result() any              { return a.count }
func (a *CountAggregation) Describe() string         { return "COUNT(*)" }
func (a *CountAggregation) Type() coltype.Type       { return coltype.Int32 }

// MaxAggregation tracks the maximum non-null evaluation of expr across every
// row, widening numeric types to float64 for comparison and ordering other
// values (strings, booleans) as compareAny does. Result is nil if no
// row produced a non-null value.
type MaxAggregation struct {
	expr     expr.Expr
	hasMax   bool
	max      any
	maxFloat float64
}

func NewMaxAggregation(e expr.Expr) *MaxAggregation { return &MaxAggregation{expr: e} }

func (a *MaxAggregation) Add(ctx rowctx.Context) error {
	v, err := a.expr.Evaluate(ctx)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		if !a.hasMax || compareAny(v, a.max) > 0 {
			a.max = v
			a.hasMax = true
		}
		return nil
	}
	if !a.hasMax || f > a.maxFloat {
		a.max = v
		a.maxFloat = f
		a.hasMax = true
	}
	return nil
}

func (a *MaxAggregation) Result() any {
	if !a.hasMax {
		return nil
	}
	return a.max
}
func (a *MaxAggregation) Describe() string  { return "MAX(" + a.expr.Describe() + ")" }
func (a *MaxAggregation) Type() coltype.Type { return coltype.Nullable(a.expr.Type()) }

// ArrayAggregation accumulates every evaluation of expr, preserving input
// order, including nulls.
type ArrayAggregation struct {
	expr   expr.Expr
	values []any
}

func NewArrayAggregation(e expr.Expr) *ArrayAggregation { return &ArrayAggregation{expr: e} }

func (a *ArrayAggregation) Add(ctx rowctx.Context) error {
	v, err := a.expr.Evaluate(ctx)
	if err != nil {
		return err
	}
	a.values = append(a.values, v)
	return nil
}

func (a *ArrayAggregation) Result() any {
	out := make([]any, len(a.values))
	copy(out, a.values)
	return out
}
func (a *ArrayAggregation) Describe() string  { return "ARRAY_AGG(" + a.expr.Describe() + ")" }
func (a *ArrayAggregation) Type() coltype.Type { return coltype.Array(a.expr.Type()) }
