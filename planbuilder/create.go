package planbuilder

import (
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/sqlast"
	"github.com/pcardune/pauldb/storage"
)

// BuildCreate translates a CREATE TABLE statement and registers the table
// with db. Exactly one table, with each column's SQL type resolved through
// registry (TEXT/INT/FLOAT, optionally array-suffixed).
func BuildCreate(stmt *sqlast.Statement, db storage.DbFile, registry *coltype.Registry) error {
	schema := dbschema.NewTableSchema(stmt.CreateTable)

	cols := make([]dbschema.StoredColumn, 0, len(stmt.Columns))
	for _, c := range stmt.Columns {
		t, err := registry.FromSQL(c.SQLType)
		if err != nil {
			return err
		}
		cols = append(cols, dbschema.NewColumn(c.Name, t))
	}

	schema, err := schema.With(cols...)
	if err != nil {
		return err
	}

	_, err = db.GetOrCreateTable(schema)
	return err
}
