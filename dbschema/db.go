package dbschema

import "github.com/pcardune/pauldb/dberr"

// ReservedSystemName is rejected by DBSchema constructors.
const ReservedSystemName = "$system"

// DefaultDBName is used when no name is given to NewDBSchema.
const DefaultDBName = "default"

// MigrationTablePrefix marks table names reserved by the migration engine.
const MigrationTablePrefix = "$migration_"

// DBSchema is a named collection of table schemas. Declaration order (the
// order tables were first introduced via WithTables) is preserved so the
// migration engine can process target tables in a deterministic order.
type DBSchema struct {
	name    string
	schemas map[string]*TableSchema
	order   []string
}

// NewDBSchema builds an empty database schema, defaulting its name to
// DefaultDBName. Passing ReservedSystemName is an error.
func NewDBSchema(name ...string) (*DBSchema, error) {
	dbName := DefaultDBName
	if len(name) > 0 {
		dbName = name[0]
	}
	if dbName == ReservedSystemName {
		return nil, dberr.NewSchemaError("%q is a reserved database name", ReservedSystemName)
	}
	return &DBSchema{name: dbName, schemas: map[string]*TableSchema{}}, nil
}

func (d *DBSchema) Name() string { return d.name }

// WithTables merges tables into d by name; if the same name appears more
// than once within this single call, that is an error, but a later call
// merging over an earlier one lets the later table win. A table name new to
// d is appended to the declaration order; re-merging an existing name keeps
// its original position.
func (d *DBSchema) WithTables(tables ...*TableSchema) (*DBSchema, error) {
	seenThisCall := map[string]bool{}
	for _, table := range tables {
		if seenThisCall[table.Name()] {
			return nil, dberr.NewSchemaError("duplicate table %q in a single WithTables call", table.Name())
		}
		seenThisCall[table.Name()] = true
	}

	clone := &DBSchema{
		name:    d.name,
		schemas: make(map[string]*TableSchema, len(d.schemas)+len(tables)),
		order:   append([]string(nil), d.order...),
	}
	for k, v := range d.schemas {
		clone.schemas[k] = v
	}
	for _, table := range tables {
		if _, exists := clone.schemas[table.Name()]; !exists {
			clone.order = append(clone.order, table.Name())
		}
		clone.schemas[table.Name()] = table
	}
	return clone, nil
}

// Table looks up a table schema by name.
func (d *DBSchema) Table(name string) (*TableSchema, bool) {
	t, ok := d.schemas[name]
	return t, ok
}

// Tables returns every table schema in declaration order.
func (d *DBSchema) Tables() []*TableSchema {
	out := make([]*TableSchema, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.schemas[name])
	}
	return out
}

// TableNames returns the names of every table in d, in declaration order.
func (d *DBSchema) TableNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
