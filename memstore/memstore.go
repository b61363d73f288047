// Package memstore is an in-memory implementation of storage.DbFile and
// storage.HeapTable, used by the core's own tests and by callers that want
// an embedded database with no persistence at all.
package memstore

import (
	"fmt"
	"iter"
	"sync"

	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/storage"
)

var _ storage.DbFile = (*DB)(nil)
var _ storage.HeapTable = (*Table)(nil)

// DB is a process-local, mutex-guarded collection of heap tables. The zero
// value is not usable; construct with New.
type DB struct {
	mu     sync.Mutex
	tables map[string]*Table
}

// New builds an empty in-memory database.
func New() *DB {
	return &DB{tables: map[string]*Table{}}
}

func (db *DB) GetOrCreateTable(schema *dbschema.TableSchema) (storage.HeapTable, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if t, ok := db.tables[schema.Name()]; ok {
		return t, nil
	}
	t := &Table{schema: schema}
	db.tables[schema.Name()] = t
	return t, nil
}

func (db *DB) GetTable(name string) (storage.HeapTable, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, ok := db.tables[name]
	if !ok {
		return nil, &dberr.TableNotFoundError{TableName: name}
	}
	return t, nil
}

func (db *DB) GetSchemas() ([]*dbschema.TableSchema, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*dbschema.TableSchema, 0, len(db.tables))
	for _, t := range db.tables {
		out = append(out, t.schema)
	}
	return out, nil
}

func (db *DB) GetSchemasOrThrow() ([]*dbschema.TableSchema, error) {
	db.mu.Lock()
	n := len(db.tables)
	db.mu.Unlock()
	if n == 0 {
		return nil, dberr.NewSchemaError("database has not been initialized: no tables in storage")
	}
	return db.GetSchemas()
}

func (db *DB) RenameTable(oldName, newName string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, ok := db.tables[oldName]
	if !ok {
		return &dberr.TableNotFoundError{TableName: oldName}
	}
	t.mu.Lock()
	t.schema = t.schema.WithName(newName)
	t.mu.Unlock()
	delete(db.tables, oldName)
	db.tables[newName] = t
	return nil
}

func (db *DB) DropTable(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.tables[name]; !ok {
		return &dberr.TableNotFoundError{TableName: name}
	}
	delete(db.tables, name)
	return nil
}

// Table is an in-memory heap table: an append-only slice of records guarded
// by its own mutex, independent of the owning DB's table-directory lock.
type Table struct {
	mu      sync.Mutex
	schema  *dbschema.TableSchema
	records []dbschema.StoredRecord
}

func (t *Table) Insert(rec dbschema.InsertRecord) (dbschema.StoredRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := t.schema.FillDefaults(rec)
	for _, col := range t.schema.StoredColumns() {
		v, ok := stored[col.Name()]
		if !ok {
			continue
		}
		if !col.Type().IsValid(v) {
			return nil, &coltypeValidationError{ColumnName: col.Name(), Value: v}
		}
	}
	t.records = append(t.records, stored)
	return stored, nil
}

func (t *Table) Iterate() iter.Seq2[dbschema.StoredRecord, error] {
	return func(yield func(dbschema.StoredRecord, error) bool) {
		t.mu.Lock()
		records := make([]dbschema.StoredRecord, len(t.records))
		copy(records, t.records)
		t.mu.Unlock()
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (t *Table) Drop() error { return nil }

func (t *Table) Schema() *dbschema.TableSchema {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.schema
}

// coltypeValidationError is the validation error the core spec defers to
// the storage layer: a value written to a column fails that column's
// IsValid check.
type coltypeValidationError struct {
	ColumnName string
	Value      any
}

func (e *coltypeValidationError) Error() string {
	return fmt.Sprintf("memstore: value %#v is not valid for column %s", e.Value, e.ColumnName)
}
