package expr

import (
	"fmt"

	"github.com/pcardune/pauldb/coltype"
)

// Literal is a constant value carrying its own type.
type Literal struct {
	value any
	typ   coltype.Type
}

// NewLiteral builds a constant expression.
func NewLiteral(value any, typ coltype.Type) *Literal {
	return &Literal{value: value, typ: typ}
}

func (e *Literal) Value() any { return e.value }

func (e *Literal) Evaluate(Context) (any, error) { return e.value, nil }

func (e *Literal) Describe() string {
	if s, ok := e.value.(string); ok {
		return fmt.Sprintf("'%s'", s)
	}
	return fmt.Sprintf("%v", e.value)
}

func (e *Literal) Type() coltype.Type { return e.typ }
