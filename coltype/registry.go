package coltype

import (
	"fmt"
	"strings"
)

// Registry parses type names bidirectionally between the SQL type names
// accepted by the front-end (TEXT, INT, FLOAT, with an optional "[]" suffix
// for arrays) and this package's internal Type names.
type Registry struct {
	bySQL      map[string]Type
	byInternal map[string]string
}

// NewRegistry builds a registry preloaded with the core SQL type names.
func NewRegistry() *Registry {
	r := &Registry{
		bySQL:      map[string]Type{},
		byInternal: map[string]string{},
	}
	r.register("TEXT", String)
	r.register("INT", Int32)
	r.register("FLOAT", Float)
	return r
}

// Register adds sqlName as a SQL type name resolving to t, in addition to
// the core names NewRegistry preloads.
func (r *Registry) Register(sqlName string, t Type) {
	r.register(strings.ToUpper(sqlName), t)
}

func (r *Registry) register(sqlName string, t Type) {
	r.bySQL[sqlName] = t
	r.byInternal[t.Name] = sqlName
}

// FromSQL maps a SQL type name (optionally suffixed with "[]") to a Type.
func (r *Registry) FromSQL(sqlName string) (Type, error) {
	name := strings.TrimSpace(sqlName)
	isArray := false
	if strings.HasSuffix(name, "[]") {
		isArray = true
		name = strings.TrimSuffix(name, "[]")
	}
	t, ok := r.bySQL[strings.ToUpper(name)]
	if !ok {
		return Type{}, fmt.Errorf("coltype: unknown SQL type %q", sqlName)
	}
	if isArray {
		t = Array(t)
	}
	return t, nil
}

// ToSQL maps a Type back to its SQL type name, stripping the nullable/array
// suffixes this package appends when building compound types. Nullability
// is dropped; any array layer yields a single "[]" suffix.
func (r *Registry) ToSQL(t Type) (string, error) {
	base := t.Name
	isArray := false
	for strings.HasSuffix(base, "?") || strings.HasSuffix(base, "[]") {
		if strings.HasSuffix(base, "[]") {
			isArray = true
			base = strings.TrimSuffix(base, "[]")
		} else {
			base = strings.TrimSuffix(base, "?")
		}
	}
	name, ok := r.byInternal[base]
	if !ok {
		return "", fmt.Errorf("coltype: no SQL type name for %q", t.Name)
	}
	if isArray {
		name += "[]"
	}
	return name, nil
}
