package expr

import (
	"fmt"
	"math"
	"strings"

	"github.com/pcardune/pauldb/coltype"
)

// CompareOp is one of the six comparison operators: =, !=, <, <=, >, >=.
type CompareOp string

const (
	OpEq  CompareOp = "="
	OpNeq CompareOp = "!="
	OpLt  CompareOp = "<"
	OpLte CompareOp = "<="
	OpGt  CompareOp = ">"
	OpGte CompareOp = ">="
)

// Compare evaluates both operands, then compares them. Strings compare
// lexicographically, numbers compare by IEEE754 ordering (NaN is
// non-comparable: every operator but "!=" yields false against it). When
// operand types differ, an int is promoted to float if the other operand is
// a float; any other type mismatch is an "incompatible operand types"
// error. A nil operand (SQL NULL) makes the whole comparison evaluate to
// nil, which Filter treats as "drop this row".
type Compare struct {
	left, right Expr
	op          CompareOp
}

// NewCompare builds a Compare expression.
func NewCompare(left Expr, op CompareOp, right Expr) *Compare {
	return &Compare{left: left, op: op, right: right}
}

func (e *Compare) Evaluate(ctx Context) (any, error) {
	lv, err := e.left.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := e.right.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return compareValues(lv, rv, e.op)
}

func (e *Compare) Describe() string {
	return fmt.Sprintf("%s%s%s", e.left.Describe(), e.op, e.right.Describe())
}

func (e *Compare) Type() coltype.Type { return coltype.Boolean }

func compareValues(lv, rv any, op CompareOp) (any, error) {
	if lv == nil || rv == nil {
		return nil, nil
	}

	if ls, ok := lv.(string); ok {
		rs, ok := rv.(string)
		if !ok {
			return nil, fmt.Errorf("expr: incompatible operand types: %T vs %T", lv, rv)
		}
		return applyOrdering(strings.Compare(ls, rs), op), nil
	}

	if lb, ok := lv.(bool); ok {
		rb, ok := rv.(bool)
		if !ok {
			return nil, fmt.Errorf("expr: incompatible operand types: %T vs %T", lv, rv)
		}
		return applyOrdering(boolCompare(lb, rb), op), nil
	}

	lf, lIsNum, lIsFloat := numericValue(lv)
	rf, rIsNum, rIsFloat := numericValue(rv)
	if !lIsNum || !rIsNum {
		return nil, fmt.Errorf("expr: incompatible operand types: %T vs %T", lv, rv)
	}

	if (lIsFloat && math.IsNaN(lf)) || (rIsFloat && math.IsNaN(rf)) {
		return op == OpNeq, nil
	}

	switch {
	case lf < rf:
		return applyOrdering(-1, op), nil
	case lf > rf:
		return applyOrdering(1, op), nil
	default:
		return applyOrdering(0, op), nil
	}
}

// numericValue widens any of the integer column types to float64 so that
// int/float comparisons (and int/int comparisons across differing widths)
// share one code path and let an int compare against a float by widening.
func numericValue(v any) (f float64, isNumeric, isFloat bool) {
	switch n := v.(type) {
	case float64:
		return n, true, true
	case int16:
		return float64(n), true, false
	case int32:
		return float64(n), true, false
	case uint16:
		return float64(n), true, false
	case uint32:
		return float64(n), true, false
	}
	return 0, false, false
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1 // false < true, a deliberate choice
	default:
		return 1
	}
}

func applyOrdering(cmp int, op CompareOp) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNeq:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	}
	return false
}
