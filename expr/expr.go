// Package expr implements typed expression trees: column references,
// literals, comparisons, and boolean combinators, each evaluated against a
// rowctx.Context.
package expr

import (
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/rowctx"
)

// Context is re-exported from rowctx so callers of this package don't need
// to import rowctx directly for the common case.
type Context = rowctx.Context

// Expr is the common interface every expression node satisfies.
type Expr interface {
	// Evaluate computes the expression's value against ctx. A nil result
	// with a nil error represents SQL NULL, not absence of a value.
	Evaluate(ctx Context) (any, error)
	// Describe renders a human-readable form, used for auto-naming
	// projected columns and as an aggregation's fallback output name.
	Describe() string
	// Type reports the expression's static value type.
	Type() coltype.Type
}
