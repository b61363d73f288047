package expr

import (
	"fmt"

	"github.com/pcardune/pauldb/coltype"
)

// BoolOp is one of the two boolean combinators, AND or OR.
type BoolOp string

const (
	OpAnd BoolOp = "AND"
	OpOr  BoolOp = "OR"
)

// AndOr short-circuits: AND stops (returning false) as soon as the left
// operand is false, OR stops (returning true) as soon as the left operand is
// true. A non-boolean operand raises a type error at evaluation.
type AndOr struct {
	left, right Expr
	op          BoolOp
}

// NewAndOr builds an AndOr expression.
func NewAndOr(left Expr, op BoolOp, right Expr) *AndOr {
	return &AndOr{left: left, op: op, right: right}
}

func (e *AndOr) Evaluate(ctx Context) (any, error) {
	lv, err := e.left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	lb, err := requireBool(lv)
	if err != nil {
		return nil, err
	}

	if e.op == OpAnd && !lb {
		return false, nil
	}
	if e.op == OpOr && lb {
		return true, nil
	}

	rv, err := e.right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return requireBool(rv)
}

func requireBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expr: AND/OR operand is not boolean: %#v", v)
	}
	return b, nil
}

func (e *AndOr) Describe() string {
	return fmt.Sprintf("(%s %s %s)", e.left.Describe(), e.op, e.right.Describe())
}

func (e *AndOr) Type() coltype.Type { return coltype.Boolean }
