package planbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/sqlast"
)

// resolveExpr translates one sqlast.Expr into an expr.Expr, resolving
// column references against scope.
func resolveExpr(s *scope, e *sqlast.Expr) (expr.Expr, error) {
	switch e.Kind {
	case sqlast.ExprColumnRef:
		col, tableName, err := resolveColumn(s, e.Table, e.Column)
		if err != nil {
			return nil, err
		}
		return expr.NewColumnRef(col, tableName), nil

	case sqlast.ExprNumber:
		v, typ, err := parseNumberLiteral(e.Literal)
		if err != nil {
			return nil, err
		}
		return expr.NewLiteral(v, typ), nil

	case sqlast.ExprString:
		return expr.NewLiteral(e.Literal, coltype.String), nil

	case sqlast.ExprBinary:
		left, err := resolveExpr(s, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := resolveExpr(s, e.Right)
		if err != nil {
			return nil, err
		}
		switch expr.CompareOp(e.Operator) {
		case expr.OpEq, expr.OpNeq, expr.OpLt, expr.OpLte, expr.OpGt, expr.OpGte:
			return expr.NewCompare(left, expr.CompareOp(e.Operator), right), nil
		}
		switch expr.BoolOp(strings.ToUpper(e.Operator)) {
		case expr.OpAnd, expr.OpOr:
			return expr.NewAndOr(left, expr.BoolOp(strings.ToUpper(e.Operator)), right), nil
		}
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("binary operator %q", e.Operator)}

	case sqlast.ExprAggrFunc:
		return nil, &dberr.NotImplementedError{Feature: "aggregate expression outside the projection list"}

	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("expression kind %q", e.Kind)}
	}
}

// parseNumberLiteral converts a raw numeric literal to a Go value and its
// inferred column type: a literal containing a decimal point or exponent is
// a float, otherwise a 32-bit integer.
func parseNumberLiteral(lit string) (any, coltype.Type, error) {
	if strings.ContainsAny(lit, ".eE") {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, coltype.Type{}, fmt.Errorf("planbuilder: invalid numeric literal %q: %w", lit, err)
		}
		return v, coltype.Float, nil
	}
	v, err := strconv.ParseInt(lit, 10, 32)
	if err != nil {
		return nil, coltype.Type{}, fmt.Errorf("planbuilder: invalid numeric literal %q: %w", lit, err)
	}
	return int32(v), coltype.Int32, nil
}

// sanitizeName derives a default projected-column name from an expression's
// Describe() form: whitespace is removed entirely, every remaining
// character outside [A-Za-z0-9_] becomes '_', and the result is lowercased.
func sanitizeName(s string) string {
	s = strings.Join(strings.Fields(s), "")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.ToLower(b.String())
}
