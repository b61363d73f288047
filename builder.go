package pauldb

import (
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
)

// Built-in column types, re-exported so a caller building schemas
// programmatically doesn't need to import coltype directly.
var (
	StringType    = coltype.String
	BooleanType   = coltype.Boolean
	Int16Type     = coltype.Int16
	Int32Type     = coltype.Int32
	Uint16Type    = coltype.Uint16
	Uint32Type    = coltype.Uint32
	FloatType     = coltype.Float
	DateType      = coltype.Date
	TimestampType = coltype.Timestamp
	SerialType    = coltype.Serial
)

// Nullable wraps t so that it additionally accepts nil.
func Nullable(t coltype.Type) coltype.Type { return coltype.Nullable(t) }

// Array wraps t so that it accepts an ordered sequence of t-valid elements.
func Array(t coltype.Type) coltype.Type { return coltype.Array(t) }

// NewDatabase starts an empty database schema, defaulting its name to
// dbschema.DefaultDBName.
func NewDatabase(name ...string) (*dbschema.DBSchema, error) {
	return dbschema.NewDBSchema(name...)
}

// NewTable starts an empty table schema.
func NewTable(name string) *dbschema.TableSchema {
	return dbschema.NewTableSchema(name)
}

// NewColumn starts a stored-column builder for a value of type t.
func NewColumn(name string, t coltype.Type) dbschema.StoredColumn {
	return dbschema.NewColumn(name, t)
}

// NewSerialColumn builds the always-unique, always-indexed auto-increment
// column.
func NewSerialColumn(name string) dbschema.StoredColumn {
	return dbschema.NewSerialColumn(name)
}
