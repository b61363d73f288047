package dbschema

import (
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dberr"
)

// TableSchema is an immutable descriptor for a table: an ordered sequence
// of stored columns, an ordered sequence of computed columns, and a
// name-to-column index.
type TableSchema struct {
	name            string
	storedColumns   []StoredColumn
	computedColumns []ComputedColumn
	columnsByName   map[string]Column
}

// NewTableSchema starts an empty table schema.
func NewTableSchema(name string) *TableSchema {
	return &TableSchema{
		name:          name,
		columnsByName: map[string]Column{},
	}
}

func (t *TableSchema) Name() string { return t.name }

// WithName returns a clone of t carrying a new name but the same columns.
func (t *TableSchema) WithName(name string) *TableSchema {
	clone := t.clone()
	clone.name = name
	return clone
}

func (t *TableSchema) clone() *TableSchema {
	clone := &TableSchema{
		name:            t.name,
		storedColumns:   append([]StoredColumn(nil), t.storedColumns...),
		computedColumns: append([]ComputedColumn(nil), t.computedColumns...),
		columnsByName:   make(map[string]Column, len(t.columnsByName)),
	}
	for k, v := range t.columnsByName {
		clone.columnsByName[k] = v
	}
	return clone
}

// With appends stored columns, returning a new TableSchema. Duplicate names
// (against existing columns, or within this call) are rejected.
func (t *TableSchema) With(cols ...StoredColumn) (*TableSchema, error) {
	clone := t.clone()
	for _, col := range cols {
		if _, exists := clone.columnsByName[col.Name()]; exists {
			return nil, dberr.NewSchemaError("column %q already exists in table %q", col.Name(), t.name)
		}
		clone.storedColumns = append(clone.storedColumns, col)
		clone.columnsByName[col.Name()] = col
	}
	return clone, nil
}

// WithComputedColumn appends a computed column whose input is restricted to
// stored columns already declared on t.
func (t *TableSchema) WithComputedColumn(col ComputedColumn) (*TableSchema, error) {
	if _, exists := t.columnsByName[col.Name()]; exists {
		return nil, dberr.NewSchemaError("column %q already exists in table %q", col.Name(), t.name)
	}
	for _, input := range col.inputCols {
		found, ok := t.columnsByName[input]
		if !ok {
			return nil, dberr.NewSchemaError(
				"computed column %q references %q, which is not a previously-declared stored column of %q",
				col.Name(), input, t.name)
		}
		if _, isStored := found.(StoredColumn); !isStored {
			return nil, dberr.NewSchemaError(
				"computed column %q references %q, which is itself computed", col.Name(), input)
		}
	}
	clone := t.clone()
	clone.computedColumns = append(clone.computedColumns, col)
	clone.columnsByName[col.Name()] = col
	return clone, nil
}

// WithUniqueConstraint appends a computed column whose compute function
// derives a uniqueness-constraint key from cols and is flagged so the
// storage layer enforces it as a uniqueness constraint.
func (t *TableSchema) WithUniqueConstraint(name string, typ coltype.Type, cols []string, compute func(StoredRecord) (any, error)) (*TableSchema, error) {
	cc := NewComputedColumn(name, typ, cols, compute).withUniqueConstraint()
	return t.WithComputedColumn(cc)
}

// StoredColumns returns the declared stored columns in declaration order.
func (t *TableSchema) StoredColumns() []StoredColumn {
	out := make([]StoredColumn, len(t.storedColumns))
	copy(out, t.storedColumns)
	return out
}

// ComputedColumns returns the declared computed columns in declaration order.
func (t *TableSchema) ComputedColumns() []ComputedColumn {
	out := make([]ComputedColumn, len(t.computedColumns))
	copy(out, t.computedColumns)
	return out
}

// Columns returns every column (stored then computed) in declaration order,
// used by schema introspection.
func (t *TableSchema) Columns() []Column {
	out := make([]Column, 0, len(t.storedColumns)+len(t.computedColumns))
	for _, c := range t.storedColumns {
		out = append(out, c)
	}
	for _, c := range t.computedColumns {
		out = append(out, c)
	}
	return out
}

// ColumnNames returns the names of every column in declaration order.
func (t *TableSchema) ColumnNames() []string {
	cols := t.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	return names
}

// Column looks up a column (stored or computed) by name.
func (t *TableSchema) Column(name string) (Column, bool) {
	c, ok := t.columnsByName[name]
	return c, ok
}

// HasColumn reports whether a column by that name exists on t.
func (t *TableSchema) HasColumn(name string) bool {
	_, ok := t.columnsByName[name]
	return ok
}

// CompatibleWith reports whether every stored column declared on t also
// exists on other with the same type name. Used by the migration engine's
// GetModel to surface a clearer error than a bare existence check when
// in-storage and target schemas have diverged incompatibly.
func (t *TableSchema) CompatibleWith(other *TableSchema) error {
	for _, col := range t.storedColumns {
		existing, ok := other.Column(col.Name())
		if !ok {
			return dberr.NewSchemaError("table %q is missing column %q", other.Name(), col.Name())
		}
		if existing.Type().Name != col.Type().Name {
			return dberr.NewSchemaError(
				"table %q column %q has type %q in storage but %q in the target schema",
				other.Name(), col.Name(), existing.Type().Name, col.Type().Name)
		}
	}
	return nil
}
