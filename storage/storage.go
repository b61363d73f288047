// Package storage defines the on-disk heap file store as two small
// interfaces, DbFile and HeapTable. The core depends only on these, so an in-memory fake
// (package memstore) can stand in for tests.
package storage

import (
	"iter"

	"github.com/pcardune/pauldb/dbschema"
)

// HeapTable is the physical storage for a single table: insert, iterate,
// drop (glossary).
type HeapTable interface {
	// Insert applies the table's stored-column default factories to any
	// column rec omits, persists the resulting record, and returns it.
	Insert(rec dbschema.InsertRecord) (dbschema.StoredRecord, error)
	// Iterate yields every record in insertion order.
	Iterate() iter.Seq2[dbschema.StoredRecord, error]
	// Drop releases the table's storage.
	Drop() error
	// Schema returns the live schema this heap table was created with.
	Schema() *dbschema.TableSchema
}

// DbFile is the abstract on-disk database the planner and migration engine
// consult: it can list schema versions, create/rename/drop tables, and
// return heap tables by name.
type DbFile interface {
	// GetOrCreateTable returns the existing heap table matching schema's
	// name, or creates one from schema if none exists yet. Idempotent.
	GetOrCreateTable(schema *dbschema.TableSchema) (HeapTable, error)
	// GetTable returns the heap table registered under name, or an error if
	// none exists (wraps dberr.TableNotFoundError).
	GetTable(name string) (HeapTable, error)
	// GetSchemas returns every table schema currently in storage. Returns an
	// empty slice, not an error, if the database simply has no tables yet.
	GetSchemas() ([]*dbschema.TableSchema, error)
	// GetSchemasOrThrow is GetSchemas, but returns an error instead of an
	// empty slice when the database itself has never been initialized, for
	// callers that require storage to already describe something.
	GetSchemasOrThrow() ([]*dbschema.TableSchema, error)
	// RenameTable renames an existing table in place.
	RenameTable(oldName, newName string) error
	// DropTable removes a table and its storage.
	DropTable(name string) error
}
