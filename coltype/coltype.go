// Package coltype describes the value domains ("column types") a PaulDB
// column can carry: validation, an optional binary codec, and the
// nullable/array combinators that build compound types out of primitives.
//
// Type is deliberately plain data rather than a generic type parameter
// threaded through Column, so heterogeneous columns can live together in one
// []Column slice.
package coltype

import "fmt"

// Codec reads and writes the binary representation of a value belonging to
// a Type. Not every Type has one (a computed column's output type is never
// persisted), so Type.Codec may be nil.
type Codec interface {
	// Encode appends the wire representation of v to buf and returns it.
	Encode(buf []byte, v any) ([]byte, error)
	// Decode reads one value starting at buf[0] and returns the value plus
	// the number of bytes consumed.
	Decode(buf []byte) (v any, n int, err error)
}

// Type is a named value domain. IsValid reports whether a value belongs to
// the domain; Codec, if non-nil, can serialize/deserialize values of it.
type Type struct {
	Name    string
	IsValid func(v any) bool
	Codec   Codec
}

func (t Type) String() string { return t.Name }

// New builds a Type for a Go value of type V, lifting a typed validator into
// the any-typed one every Column needs to store heterogeneously.
func New[V any](name string, isValid func(V) bool, codec Codec) Type {
	return Type{
		Name: name,
		IsValid: func(v any) bool {
			typed, ok := v.(V)
			if !ok {
				return false
			}
			return isValid(typed)
		},
		Codec: codec,
	}
}

// Nullable wraps t so that it additionally accepts nil. The resulting name
// carries a "?" suffix, and combinators compose left-to-right in
// construction order, e.g. Array(Nullable(String)).Name ==
// "string?[]".
func Nullable(t Type) Type {
	var codec Codec
	if t.Codec != nil {
		codec = nullableCodec{inner: t.Codec}
	}
	return Type{
		Name: t.Name + "?",
		IsValid: func(v any) bool {
			return v == nil || t.IsValid(v)
		},
		Codec: codec,
	}
}

// Array wraps t so that it accepts an ordered []any of t-valid elements. The
// resulting name carries a "[]" suffix.
func Array(t Type) Type {
	var codec Codec
	if t.Codec != nil {
		codec = arrayCodec{elem: t.Codec}
	}
	return Type{
		Name: t.Name + "[]",
		IsValid: func(v any) bool {
			elems, ok := v.([]any)
			if !ok {
				return false
			}
			for _, e := range elems {
				if !t.IsValid(e) {
					return false
				}
			}
			return true
		},
		Codec: codec,
	}
}

// ErrInvalidValue is wrapped by codec implementations when asked to encode a
// value their Type would reject.
type ErrInvalidValue struct {
	TypeName string
	Value    any
}

func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("value %#v is not valid for type %s", e.Value, e.TypeName)
}
