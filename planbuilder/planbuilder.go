// Package planbuilder is the SQL-to-plan translator: it walks a parsed
// sqlast.Statement, resolving identifiers against the schemas a
// storage.DbFile already holds, and produces either a plan.Node (for
// SELECT) or performs a write directly against db (CREATE, INSERT,
// REPLACE), mirroring the spec's "writes bypass the plan tree" rule.
//
// planbuilder never imports sqlparser or any particular tokenizer; astconv
// is the only package that bridges the real parser's AST to sqlast.
package planbuilder

import (
	"fmt"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/plan"
	"github.com/pcardune/pauldb/sqlast"
	"github.com/pcardune/pauldb/storage"
)

// Translate executes stmt against db. For CREATE/INSERT/REPLACE it performs
// the write immediately and returns a nil Node. For SELECT it returns the
// built (but not yet executed) plan tree; the caller pulls it to
// exhaustion via Node.Execute.
func Translate(stmt *sqlast.Statement, db storage.DbFile, registry *coltype.Registry) (plan.Node, error) {
	switch stmt.Kind {
	case sqlast.StatementCreate:
		return nil, BuildCreate(stmt, db, registry)
	case sqlast.StatementInsert, sqlast.StatementReplace:
		return nil, BuildInsert(stmt, db)
	case sqlast.StatementSelect:
		return BuildSelect(stmt, db)
	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("statement kind %q", stmt.Kind)}
	}
}
