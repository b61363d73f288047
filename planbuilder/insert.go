package planbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/sqlast"
	"github.com/pcardune/pauldb/storage"
)

// BuildInsert translates an INSERT (or REPLACE) statement and applies it to
// db immediately: exactly one target table, one VALUES row, an explicit
// column list, and literal string/number values coerced to each target
// column's declared type.
func BuildInsert(stmt *sqlast.Statement, db storage.DbFile) error {
	table, err := db.GetTable(stmt.InsertTable)
	if err != nil {
		return err
	}
	schema := table.Schema()

	if stmt.InsertValues == nil || stmt.InsertValues.Kind != sqlast.ExprList {
		return &dberr.NotImplementedError{Feature: "INSERT without a single VALUES row"}
	}
	values := stmt.InsertValues.List
	if len(values) != len(stmt.InsertColumns) {
		return dberr.NewSchemaError(
			"INSERT column count %d does not match value count %d", len(stmt.InsertColumns), len(values))
	}

	rec := make(dbschema.InsertRecord, len(values))
	for i, colName := range stmt.InsertColumns {
		col, ok := schema.Column(colName)
		if !ok {
			return &dberr.ColumnNotFoundError{ColumnName: colName, TableName: stmt.InsertTable}
		}
		v, err := literalToTypedValue(values[i], col.Type())
		if err != nil {
			return err
		}
		rec[colName] = v
	}

	_, err = table.Insert(rec)
	return err
}

// baseTypeName strips the nullable ("?") and array ("[]") suffixes coltype
// combinators append, however many times they were composed, to recover the
// underlying primitive name a literal can be coerced against.
func baseTypeName(t coltype.Type) string {
	name := t.Name
	for {
		switch {
		case strings.HasSuffix(name, "?"):
			name = strings.TrimSuffix(name, "?")
		case strings.HasSuffix(name, "[]"):
			name = strings.TrimSuffix(name, "[]")
		default:
			return name
		}
	}
}

// literalToTypedValue coerces a parsed literal (number or single-quoted
// string) to the Go value target's column type expects, per the spec's
// "only literal single_quote_string and number values supported" rule.
func literalToTypedValue(lit *sqlast.Expr, target coltype.Type) (any, error) {
	base := baseTypeName(target)
	switch lit.Kind {
	case sqlast.ExprString:
		if base != "string" {
			return nil, dberr.NewSchemaError("cannot assign a string literal to column of type %s", target.Name)
		}
		return lit.Literal, nil

	case sqlast.ExprNumber:
		switch base {
		case "float":
			v, err := strconv.ParseFloat(lit.Literal, 64)
			if err != nil {
				return nil, fmt.Errorf("planbuilder: invalid float literal %q: %w", lit.Literal, err)
			}
			return v, nil
		case "int32":
			v, err := strconv.ParseInt(lit.Literal, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("planbuilder: invalid int32 literal %q: %w", lit.Literal, err)
			}
			return int32(v), nil
		case "int16":
			v, err := strconv.ParseInt(lit.Literal, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("planbuilder: invalid int16 literal %q: %w", lit.Literal, err)
			}
			return int16(v), nil
		case "uint16":
			v, err := strconv.ParseUint(lit.Literal, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("planbuilder: invalid uint16 literal %q: %w", lit.Literal, err)
			}
			return uint16(v), nil
		case "uint32", "serial":
			v, err := strconv.ParseUint(lit.Literal, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("planbuilder: invalid uint32 literal %q: %w", lit.Literal, err)
			}
			return uint32(v), nil
		default:
			return nil, dberr.NewSchemaError("cannot assign a numeric literal to column of type %s", target.Name)
		}

	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("INSERT value of kind %q", lit.Kind)}
	}
}
