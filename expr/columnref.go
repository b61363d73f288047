package expr

import (
	"sort"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/dbschema"
)

// ColumnRef resolves a value from ctx[tableName][column.Name()]. If
// tableName is empty, it searches every table present in ctx and fails with
// AmbiguousError if more than one matches, ColumnNotFoundError if none do.
type ColumnRef struct {
	column    dbschema.Column
	tableName string
}

// NewColumnRef builds a (possibly unqualified, tableName == "") column
// reference.
func NewColumnRef(column dbschema.Column, tableName string) *ColumnRef {
	return &ColumnRef{column: column, tableName: tableName}
}

func (e *ColumnRef) Column() dbschema.Column { return e.column }
func (e *ColumnRef) TableName() string       { return e.tableName }

func (e *ColumnRef) Evaluate(ctx Context) (any, error) {
	if e.tableName != "" {
		row, ok := ctx[e.tableName]
		if !ok {
			return nil, &dberr.ColumnNotFoundError{ColumnName: e.column.Name(), TableName: e.tableName}
		}
		v, ok := row[e.column.Name()]
		if !ok {
			return nil, &dberr.ColumnNotFoundError{ColumnName: e.column.Name(), TableName: e.tableName}
		}
		return v, nil
	}

	var matchedTables []string
	var value any
	for table, row := range ctx {
		if v, ok := row[e.column.Name()]; ok {
			matchedTables = append(matchedTables, table)
			value = v
		}
	}
	switch len(matchedTables) {
	case 0:
		return nil, &dberr.ColumnNotFoundError{ColumnName: e.column.Name()}
	case 1:
		return value, nil
	default:
		sort.Strings(matchedTables)
		return nil, &dberr.AmbiguousError{ColumnName: e.column.Name(), TableNames: matchedTables}
	}
}

func (e *ColumnRef) Describe() string {
	if e.tableName != "" {
		return e.tableName + "." + e.column.Name()
	}
	return e.column.Name()
}

func (e *ColumnRef) Type() coltype.Type { return e.column.Type() }
