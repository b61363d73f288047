// Package pauldb is PaulDB's external façade: the public entry points a
// caller uses without reaching into the core's internal packages — a SQL
// executor and a set of schema-builder re-exports — mirroring the way the
// teacher exposes `sqldef.Run` and `sqldef.Options` at its repository root
// instead of making callers import `schema`/`database` directly.
package pauldb

import (
	"github.com/pcardune/pauldb/astconv"
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/migrate"
	"github.com/pcardune/pauldb/pauldblog"
	"github.com/pcardune/pauldb/plan"
	"github.com/pcardune/pauldb/planbuilder"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// DB is a PaulDB instance bound to a storage.DbFile. The zero value is not
// usable; construct with Open.
type DB struct {
	file     storage.DbFile
	registry *coltype.Registry
	logger   pauldblog.Logger
}

// Open binds a DB to file (an on-disk DbFile or memstore.New() for a
// no-persistence embedded instance), with the default SQL type registry and
// a silent logger.
func Open(file storage.DbFile) *DB {
	return &DB{file: file, registry: coltype.NewRegistry(), logger: pauldblog.NullLogger{}}
}

// WithLogger returns db with logger installed in place of the default
// NullLogger, used by the CLI to log migration/execution progress.
func (db *DB) WithLogger(logger pauldblog.Logger) *DB {
	db.logger = logger
	return db
}

// Registry exposes the SQL type registry this DB resolves CREATE TABLE
// column types against, so a caller can register additional type names.
func (db *DB) Registry() *coltype.Registry { return db.registry }

// File exposes the underlying storage.DbFile, for callers that need to drop
// down to heap-table operations this façade doesn't cover.
func (db *DB) File() storage.DbFile { return db.file }

// Execute parses and runs sql, which may contain one or more ;-separated
// statements. A single statement returns its scalar result (nil for
// CREATE/INSERT, a []map[string]any of projected records for SELECT); more
// than one statement returns a []any of per-statement results in source
// order. A failing statement aborts the batch at that point — see
// ExecuteBatch to recover the results of statements that completed first.
func (db *DB) Execute(sql string) (any, error) {
	results, err := db.ExecuteBatch(sql)
	if err != nil {
		return nil, err
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

// ExecuteBatch is Execute without the single-statement scalar collapse: it
// always returns a slice, one entry per statement, and on failure returns
// the results of every statement that completed before the one that failed
// alongside that statement's error (the prior results are not transactional
// — they remain applied even though the batch aborted).
func (db *DB) ExecuteBatch(sql string) ([]any, error) {
	stmts, err := astconv.Parse(sql)
	if err != nil {
		return nil, err
	}

	results := make([]any, 0, len(stmts))
	for _, stmt := range stmts {
		node, err := planbuilder.Translate(stmt, db.file, db.registry)
		if err != nil {
			return results, err
		}
		if node == nil {
			results = append(results, nil)
			continue
		}
		rows, err := collectRows(node, db.file)
		if err != nil {
			return results, err
		}
		results = append(results, rows)
	}
	return results, nil
}

// Migrate reconciles db's in-storage schema toward target: creating missing
// tables, then adding missing columns with their declared defaults.
func (db *DB) Migrate(target *dbschema.DBSchema) error {
	return migrate.New(db.file, target, db.logger).Migrate()
}

// collectRows pulls node's stream to exhaustion, converting each row under
// rowctx.RootKey to a plain map so callers never need to import rowctx.
func collectRows(node plan.Node, db storage.DbFile) ([]map[string]any, error) {
	var out []map[string]any
	for ctx, err := range node.Execute(db) {
		if err != nil {
			return out, err
		}
		row := ctx[rowctx.RootKey]
		rec := make(map[string]any, len(row))
		for k, v := range row {
			rec[k] = v
		}
		out = append(out, rec)
	}
	return out, nil
}
