// Package astconv translates a github.com/xwb1989/sqlparser parse tree into
// this repository's own sqlast shapes, so planbuilder never imports
// sqlparser directly and a different parser could be swapped in later
// without touching the translator.
package astconv

import (
	"fmt"
	"strings"

	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/sqlast"
	"github.com/xwb1989/sqlparser"
)

// Parse parses sql (which may contain multiple ;-separated statements) and
// converts each to a sqlast.Statement in source order.
func Parse(sql string) ([]*sqlast.Statement, error) {
	tokens := sqlparser.NewStringTokenizer(sql)
	var out []*sqlast.Statement
	for {
		stmt, err := sqlparser.ParseNext(tokens)
		if err == sqlparser.ErrEmpty {
			break
		}
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, &dberr.SQLParseError{Err: err}
		}
		converted, err := convertStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func convertStatement(stmt sqlparser.Statement) (*sqlast.Statement, error) {
	switch s := stmt.(type) {
	case *sqlparser.DDL:
		return convertDDL(s)
	case *sqlparser.Insert:
		return convertInsert(s)
	case *sqlparser.Select:
		return convertSelect(s)
	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("statement type %T", stmt)}
	}
}

func convertDDL(ddl *sqlparser.DDL) (*sqlast.Statement, error) {
	if ddl.Action != sqlparser.CreateStr {
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("DDL action %q", ddl.Action)}
	}
	if ddl.TableSpec == nil {
		return nil, &dberr.NotImplementedError{Feature: "CREATE TABLE without a column list"}
	}

	stmt := &sqlast.Statement{
		Kind:        sqlast.StatementCreate,
		CreateTable: ddl.NewName.Name.String(),
	}
	for _, col := range ddl.TableSpec.Columns {
		stmt.Columns = append(stmt.Columns, sqlast.ColumnDef{
			Name:    col.Name.String(),
			SQLType: strings.ToUpper(col.Type.Type),
		})
	}
	return stmt, nil
}

func convertInsert(ins *sqlparser.Insert) (*sqlast.Statement, error) {
	kind := sqlast.StatementInsert
	if ins.Action == sqlparser.ReplaceStr {
		kind = sqlast.StatementReplace
	}

	rows, ok := ins.Rows.(sqlparser.Values)
	if !ok || len(rows) != 1 {
		return nil, &dberr.NotImplementedError{Feature: "INSERT with other than exactly one VALUES row"}
	}

	valueExprs := make([]*sqlast.Expr, len(rows[0]))
	for i, v := range rows[0] {
		e, err := convertExpr(v)
		if err != nil {
			return nil, err
		}
		valueExprs[i] = e
	}

	columns := make([]string, len(ins.Columns))
	for i, c := range ins.Columns {
		columns[i] = c.String()
	}
	if len(columns) == 0 {
		return nil, &dberr.NotImplementedError{Feature: "INSERT without an explicit column list"}
	}

	return &sqlast.Statement{
		Kind:          kind,
		InsertTable:   sqlparser.String(ins.Table.Name),
		InsertColumns: columns,
		InsertValues:  &sqlast.Expr{Kind: sqlast.ExprList, List: valueExprs},
	}, nil
}

func convertSelect(sel *sqlparser.Select) (*sqlast.Statement, error) {
	stmt := &sqlast.Statement{
		Kind:        sqlast.StatementSelect,
		HasGroupBy:  len(sel.GroupBy) > 0,
		HasHaving:   sel.Having != nil,
		HasDistinct: sel.Distinct == sqlparser.DistinctStr,
	}

	for _, expr := range sel.SelectExprs {
		item, err := convertSelectExpr(expr)
		if err != nil {
			return nil, err
		}
		stmt.Select = append(stmt.Select, item)
	}

	for _, tableExpr := range sel.From {
		items, err := convertTableExpr(tableExpr)
		if err != nil {
			return nil, err
		}
		stmt.From = append(stmt.From, items...)
	}

	if sel.Where != nil {
		where, err := convertExpr(sel.Where.Expr)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	for _, ord := range sel.OrderBy {
		e, err := convertExpr(ord.Expr)
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = append(stmt.OrderBy, sqlast.OrderByItem{
			Expr: e,
			Desc: ord.Direction == sqlparser.DescScr,
		})
	}

	if sel.Limit != nil {
		if sel.Limit.Offset != nil {
			return nil, &dberr.NotImplementedError{Feature: "LIMIT with OFFSET"}
		}
		n, err := convertExpr(sel.Limit.Rowcount)
		if err != nil {
			return nil, err
		}
		stmt.Limit = n
	}

	return stmt, nil
}

func convertTableExpr(t sqlparser.TableExpr) ([]sqlast.FromItem, error) {
	switch e := t.(type) {
	case *sqlparser.AliasedTableExpr:
		name, ok := e.Expr.(sqlparser.TableName)
		if !ok {
			return nil, &dberr.NotImplementedError{Feature: "subquery or derived table in FROM"}
		}
		return []sqlast.FromItem{{
			Table: name.Name.String(),
			Alias: e.As.String(),
		}}, nil
	case *sqlparser.JoinTableExpr:
		if e.Join != sqlparser.JoinStr {
			return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("join type %q", e.Join)}
		}
		left, err := convertTableExpr(e.LeftExpr)
		if err != nil {
			return nil, err
		}
		right, err := convertTableExpr(e.RightExpr)
		if err != nil {
			return nil, err
		}
		if len(right) != 1 {
			return nil, &dberr.NotImplementedError{Feature: "nested join on the right-hand side"}
		}
		if e.Condition.On == nil {
			return nil, &dberr.NotImplementedError{Feature: "JOIN without ON"}
		}
		onExpr, err := convertExpr(e.Condition.On)
		if err != nil {
			return nil, err
		}
		right[0].JoinOn = onExpr
		return append(left, right...), nil
	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("FROM clause shape %T", t)}
	}
}

func convertSelectExpr(e sqlparser.SelectExpr) (sqlast.SelectItem, error) {
	switch expr := e.(type) {
	case *sqlparser.StarExpr:
		return sqlast.SelectItem{Star: true}, nil
	case *sqlparser.AliasedExpr:
		converted, err := convertExpr(expr.Expr)
		if err != nil {
			return sqlast.SelectItem{}, err
		}
		return sqlast.SelectItem{Expr: converted, Alias: expr.As.String()}, nil
	default:
		return sqlast.SelectItem{}, &dberr.NotImplementedError{Feature: fmt.Sprintf("projection shape %T", e)}
	}
}

func convertExpr(e sqlparser.Expr) (*sqlast.Expr, error) {
	switch expr := e.(type) {
	case *sqlparser.ColName:
		table := ""
		if !expr.Qualifier.Name.IsEmpty() {
			table = expr.Qualifier.Name.String()
		}
		return &sqlast.Expr{Kind: sqlast.ExprColumnRef, Table: table, Column: expr.Name.String()}, nil

	case *sqlparser.SQLVal:
		switch expr.Type {
		case sqlparser.IntVal, sqlparser.FloatVal:
			return &sqlast.Expr{Kind: sqlast.ExprNumber, Literal: string(expr.Val)}, nil
		case sqlparser.StrVal:
			return &sqlast.Expr{Kind: sqlast.ExprString, Literal: string(expr.Val)}, nil
		default:
			return nil, &dberr.NotImplementedError{Feature: "non-string/number literal value"}
		}

	case *sqlparser.ComparisonExpr:
		left, err := convertExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		return &sqlast.Expr{Kind: sqlast.ExprBinary, Operator: expr.Operator, Left: left, Right: right}, nil

	case *sqlparser.AndExpr:
		left, err := convertExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		return &sqlast.Expr{Kind: sqlast.ExprBinary, Operator: "AND", Left: left, Right: right}, nil

	case *sqlparser.OrExpr:
		left, err := convertExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		return &sqlast.Expr{Kind: sqlast.ExprBinary, Operator: "OR", Left: left, Right: right}, nil

	case *sqlparser.ParenExpr:
		return convertExpr(expr.Expr)

	case *sqlparser.FuncExpr:
		name := strings.ToUpper(expr.Name.String())
		if isAggregateName(name) {
			args := make([]*sqlast.Expr, 0, len(expr.Exprs))
			for _, a := range expr.Exprs {
				if _, ok := a.(*sqlparser.StarExpr); ok {
					args = append(args, &sqlast.Expr{Kind: sqlast.ExprColumnRef, Column: "*"})
					continue
				}
				aliased, ok := a.(*sqlparser.AliasedExpr)
				if !ok {
					return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("aggregate argument shape %T", a)}
				}
				converted, err := convertExpr(aliased.Expr)
				if err != nil {
					return nil, err
				}
				args = append(args, converted)
			}
			return &sqlast.Expr{Kind: sqlast.ExprAggrFunc, FuncName: name, Args: args, Distinct: expr.Distinct}, nil
		}
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("function %q", name)}

	case sqlparser.ValTuple:
		list := make([]*sqlast.Expr, len(expr))
		for i, e := range expr {
			converted, err := convertExpr(e)
			if err != nil {
				return nil, err
			}
			list[i] = converted
		}
		return &sqlast.Expr{Kind: sqlast.ExprList, List: list}, nil

	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("expression shape %T", e)}
	}
}

func isAggregateName(name string) bool {
	switch name {
	case "MAX", "COUNT", "ARRAY_AGG":
		return true
	default:
		return false
	}
}
