// Package migrate implements additive schema evolution: reconciling an
// existing on-disk schema against a target dbschema.DBSchema by creating
// missing tables and adding missing columns (rebuild-and-rename), the way
// the teacher's schema.GenerateDDLs reconciles a current schema against a
// desired one, adapted from DDL diffing to direct heap-table operations
// since PaulDB has no DDL layer of its own to emit.
package migrate

import (
	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/pauldblog"
	"github.com/pcardune/pauldb/storage"
)

// Migrator reconciles db's in-storage schema toward target.
type Migrator struct {
	db     storage.DbFile
	target *dbschema.DBSchema
	logger pauldblog.Logger
}

// New builds a Migrator. logger defaults to pauldblog.NullLogger when nil.
func New(db storage.DbFile, target *dbschema.DBSchema, logger pauldblog.Logger) *Migrator {
	if logger == nil {
		logger = pauldblog.NullLogger{}
	}
	return &Migrator{db: db, target: target, logger: logger}
}

// AddMissingTables creates every target table absent from storage, in
// declaration order. GetOrCreateTable is idempotent, so running this twice
// has the same effect as running it once.
func (m *Migrator) AddMissingTables() error {
	for _, schema := range m.target.Tables() {
		if _, err := m.db.GetOrCreateTable(schema); err != nil {
			return err
		}
		m.logger.Printf("migrate: ensured table %q exists\n", schema.Name())
	}
	return nil
}

// AddMissingColumn adds colName to tableName by rebuilding the table under
// the target schema and copying every existing row across, letting the new
// table's default-value factory fill the added column. tableName must
// already exist in storage; colName must not already exist there and must
// carry a default factory in the target schema.
func (m *Migrator) AddMissingColumn(tableName, colName string) error {
	oldTable, err := m.db.GetTable(tableName)
	if err != nil {
		return err
	}
	oldSchema := oldTable.Schema()
	if oldSchema.HasColumn(colName) {
		return dberr.NewSchemaError("column %q already exists in table %q", colName, tableName)
	}

	newSchema, ok := m.target.Table(tableName)
	if !ok {
		return &dberr.TableNotFoundError{TableName: tableName}
	}
	col, ok := newSchema.Column(colName)
	if !ok {
		return &dberr.ColumnNotFoundError{ColumnName: colName, TableName: tableName}
	}
	stored, isStored := col.(dbschema.StoredColumn)
	if !isStored || !stored.HasDefault() {
		return dberr.NewSchemaError("column %q of table %q does not have a default value", colName, tableName)
	}

	sourceTableName := tableName
	if newSchema.Name() == oldSchema.Name() {
		sourceTableName = dbschema.MigrationTablePrefix + tableName
		if err := m.db.RenameTable(tableName, sourceTableName); err != nil {
			return err
		}
	}
	sourceTable, err := m.db.GetTable(sourceTableName)
	if err != nil {
		return err
	}

	newTable, err := m.db.GetOrCreateTable(newSchema)
	if err != nil {
		return err
	}

	for rec, err := range sourceTable.Iterate() {
		if err != nil {
			return err
		}
		insertRec := make(dbschema.InsertRecord, len(rec))
		for k, v := range rec {
			insertRec[k] = v
		}
		if _, err := newTable.Insert(insertRec); err != nil {
			return err
		}
	}

	m.logger.Printf("migrate: added column %q to table %q (via %q)\n", colName, tableName, sourceTableName)
	return m.db.DropTable(sourceTableName)
}

// AddMissingColumns adds every stored column present in the target schema
// but absent from storage, for every target table. Each target table must
// already exist in storage.
func (m *Migrator) AddMissingColumns() error {
	for _, name := range m.target.TableNames() {
		newSchema, ok := m.target.Table(name)
		if !ok {
			continue
		}
		for _, col := range newSchema.StoredColumns() {
			oldTable, err := m.db.GetTable(name)
			if err != nil {
				return err
			}
			if oldTable.Schema().HasColumn(col.Name()) {
				continue
			}
			if err := m.AddMissingColumn(name, col.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetModel validates that every target table and every target stored
// column exists in storage with a compatible type, then returns a mapping
// from table name to live heap-table handle alongside the target schema.
func (m *Migrator) GetModel() (map[string]storage.HeapTable, *dbschema.DBSchema, error) {
	out := make(map[string]storage.HeapTable, len(m.target.TableNames()))
	for _, name := range m.target.TableNames() {
		newSchema, ok := m.target.Table(name)
		if !ok {
			continue
		}
		table, err := m.db.GetTable(name)
		if err != nil {
			return nil, nil, err
		}
		if err := newSchema.CompatibleWith(table.Schema()); err != nil {
			return nil, nil, err
		}
		out[name] = table
	}
	return out, m.target, nil
}

// Migrate runs the full reconciliation: missing tables first, then missing
// columns on every table (old and newly created alike).
func (m *Migrator) Migrate() error {
	if err := m.AddMissingTables(); err != nil {
		return err
	}
	return m.AddMissingColumns()
}
