package planbuilder

import (
	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/dbschema"
)

// scopeEntry is one FROM-clause table in declaration order: its alias (or
// bare table name if no AS was given) and its resolved schema.
type scopeEntry struct {
	alias  string
	schema *dbschema.TableSchema
}

// scope is the set of tables in resolution scope at a given point while
// walking a SELECT: every table named so far in the FROM/JOIN list, in
// declaration order, plus an alias index for qualified lookups.
type scope struct {
	entries []scopeEntry
	byAlias map[string]*dbschema.TableSchema
}

func newScope() *scope {
	return &scope{byAlias: map[string]*dbschema.TableSchema{}}
}

func (s *scope) add(alias string, schema *dbschema.TableSchema) {
	s.entries = append(s.entries, scopeEntry{alias: alias, schema: schema})
	s.byAlias[alias] = schema
}

func (s *scope) multiTable() bool { return len(s.entries) > 1 }

// resolveColumn finds the column named col, optionally qualified by table.
// Unqualified references are resolved against the first table in scope
// that declares col; whether the reference is truly ambiguous across more
// than one table is left to expr.ColumnRef's runtime resolution (tableName
// == "" there searches every table present in the row context), matching
// the spec's AmbiguousError-at-evaluation design.
func resolveColumn(s *scope, table, col string) (dbschema.Column, string, error) {
	if table != "" {
		schema, ok := s.byAlias[table]
		if !ok {
			return nil, "", &dberr.ColumnNotFoundError{ColumnName: col, TableName: table}
		}
		c, ok := schema.Column(col)
		if !ok {
			return nil, "", &dberr.ColumnNotFoundError{ColumnName: col, TableName: table}
		}
		return c, table, nil
	}

	for _, e := range s.entries {
		if c, ok := e.schema.Column(col); ok {
			return c, "", nil
		}
	}
	return nil, "", &dberr.ColumnNotFoundError{ColumnName: col}
}
