package planbuilder

import (
	"fmt"
	"strconv"

	"github.com/pcardune/pauldb/dberr"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/plan"
	"github.com/pcardune/pauldb/sqlast"
	"github.com/pcardune/pauldb/storage"
)

// BuildSelect translates a SELECT statement into a plan tree, following the
// translation order in the spec: reject unsupported clauses, build the FROM
// chain, then wrap WHERE/ORDER BY/LIMIT, then switch to Aggregate or Select
// mode depending on the projection list.
func BuildSelect(stmt *sqlast.Statement, db storage.DbFile) (plan.Node, error) {
	if stmt.HasGroupBy {
		return nil, &dberr.NotImplementedError{Feature: "GROUP BY"}
	}
	if stmt.HasHaving {
		return nil, &dberr.NotImplementedError{Feature: "HAVING"}
	}
	if stmt.HasDistinct {
		return nil, &dberr.NotImplementedError{Feature: "DISTINCT"}
	}
	if stmt.HasWith {
		return nil, &dberr.NotImplementedError{Feature: "WITH"}
	}
	if stmt.HasWindow {
		return nil, &dberr.NotImplementedError{Feature: "WINDOW"}
	}
	if len(stmt.From) == 0 {
		return nil, &dberr.NotImplementedError{Feature: "SELECT without FROM"}
	}

	sc := newScope()

	first := stmt.From[0]
	firstTable, err := db.GetTable(first.Table)
	if err != nil {
		return nil, err
	}
	firstAlias := first.Alias
	if firstAlias == "" {
		firstAlias = first.Table
	}
	sc.add(firstAlias, firstTable.Schema())
	var root plan.Node = plan.NewTableScan(first.Table, firstAlias)

	for _, item := range stmt.From[1:] {
		if item.JoinOn == nil {
			return nil, &dberr.NotImplementedError{Feature: "FROM entry without an explicit JOIN ... ON"}
		}
		joinedTable, err := db.GetTable(item.Table)
		if err != nil {
			return nil, err
		}
		alias := item.Alias
		if alias == "" {
			alias = item.Table
		}
		sc.add(alias, joinedTable.Schema())

		onExpr, err := resolveExpr(sc, item.JoinOn)
		if err != nil {
			return nil, err
		}
		root = plan.NewJoin(root, plan.NewTableScan(item.Table, alias), onExpr)
	}

	if stmt.Where != nil {
		pred, err := resolveExpr(sc, stmt.Where)
		if err != nil {
			return nil, err
		}
		root = plan.NewFilter(root, pred)
	}

	if len(stmt.OrderBy) > 0 {
		orderings := make([]plan.Ordering, len(stmt.OrderBy))
		for i, ob := range stmt.OrderBy {
			e, err := resolveExpr(sc, ob.Expr)
			if err != nil {
				return nil, err
			}
			dir := plan.Asc
			if ob.Desc {
				dir = plan.Desc
			}
			orderings[i] = plan.Ordering{Expr: e, Direction: dir}
		}
		root = plan.NewOrderBy(root, orderings)
	}

	if stmt.Limit != nil {
		n, err := limitValue(stmt.Limit)
		if err != nil {
			return nil, err
		}
		root = plan.NewLimit(root, n)
	}

	if isAggregateProjection(stmt.Select) {
		return buildAggregate(sc, root, stmt.Select)
	}
	return buildProjection(sc, root, stmt.Select)
}

func isAggregateProjection(items []sqlast.SelectItem) bool {
	for _, item := range items {
		if item.Expr != nil && item.Expr.Kind == sqlast.ExprAggrFunc {
			return true
		}
	}
	return false
}

// limitValue requires LIMIT's argument to be a non-negative integer
// literal, per spec §4.5: "other AST shapes raise an error."
func limitValue(e *sqlast.Expr) (int, error) {
	if e.Kind != sqlast.ExprNumber {
		return 0, &dberr.NotImplementedError{Feature: "LIMIT value that is not a number literal"}
	}
	n, err := strconv.Atoi(e.Literal)
	if err != nil || n < 0 {
		return 0, dberr.NewSchemaError("LIMIT must be a non-negative integer literal, got %q", e.Literal)
	}
	return n, nil
}

// buildAggregate builds an Aggregate node. Every projected item must itself
// be an aggregate function; mixing in a plain column reference would need
// GROUP BY, which is out of scope.
func buildAggregate(sc *scope, child plan.Node, items []sqlast.SelectItem) (plan.Node, error) {
	multi := plan.NewMultiAggregation()
	for _, item := range items {
		if item.Star || item.Expr == nil || item.Expr.Kind != sqlast.ExprAggrFunc {
			return nil, &dberr.NotImplementedError{
				Feature: "mixing aggregate and non-aggregate projections without GROUP BY",
			}
		}
		agg, err := buildAggregation(sc, item.Expr)
		if err != nil {
			return nil, err
		}
		name := item.Alias
		if name == "" {
			name = sanitizeName(agg.Describe())
		}
		multi.Add(name, agg)
	}
	return plan.NewAggregate(child, multi), nil
}

func buildAggregation(sc *scope, e *sqlast.Expr) (plan.Aggregation, error) {
	if e.Distinct {
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("%s(DISTINCT ...)", e.FuncName)}
	}
	switch e.FuncName {
	case "COUNT":
		return plan.NewCountAggregation(), nil
	case "MAX":
		arg, err := resolveAggregateArg(sc, e)
		if err != nil {
			return nil, err
		}
		return plan.NewMaxAggregation(arg), nil
	case "ARRAY_AGG":
		arg, err := resolveAggregateArg(sc, e)
		if err != nil {
			return nil, err
		}
		return plan.NewArrayAggregation(arg), nil
	default:
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("aggregate function %q", e.FuncName)}
	}
}

func resolveAggregateArg(sc *scope, e *sqlast.Expr) (expr.Expr, error) {
	if len(e.Args) != 1 {
		return nil, dberr.NewSchemaError("%s takes exactly one argument", e.FuncName)
	}
	arg := e.Args[0]
	if arg.Kind == sqlast.ExprColumnRef && arg.Column == "*" {
		return nil, &dberr.NotImplementedError{Feature: fmt.Sprintf("%s(*)", e.FuncName)}
	}
	return resolveExpr(sc, arg)
}

// buildProjection builds a Select node, expanding "*" to every column of
// every table in scope (prefixed tableName_columnName once more than one
// table is in scope) and naming each explicit expression by its alias or a
// sanitized form of its Describe().
func buildProjection(sc *scope, child plan.Node, items []sqlast.SelectItem) (plan.Node, error) {
	sel := plan.NewSelect(child, "")
	multiTable := sc.multiTable()

	for _, item := range items {
		if item.Star {
			for _, entry := range sc.entries {
				for _, col := range entry.schema.Columns() {
					name := col.Name()
					if multiTable {
						name = entry.alias + "_" + col.Name()
					}
					sel.AddColumn(name, expr.NewColumnRef(col, entry.alias))
				}
			}
			continue
		}

		e, err := resolveExpr(sc, item.Expr)
		if err != nil {
			return nil, err
		}
		name := item.Alias
		if name == "" {
			name = sanitizeName(e.Describe())
		}
		sel.AddColumn(name, e)
	}
	return sel, nil
}
