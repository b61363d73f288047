package plan

import (
	"testing"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/expr"
	"github.com/pcardune/pauldb/memstore"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPoints(t *testing.T) *memstore.DB {
	t.Helper()
	db := memstore.New()
	schema, err := dbschema.NewTableSchema("points").With(
		dbschema.NewColumn("x", coltype.Float),
		dbschema.NewColumn("y", coltype.Float),
		dbschema.NewColumn("color", coltype.String),
	)
	require.NoError(t, err)
	table, err := db.GetOrCreateTable(schema)
	require.NoError(t, err)

	rows := []dbschema.InsertRecord{
		{"x": 1.0, "y": 2.0, "color": "green"},
		{"x": 3.0, "y": 4.0, "color": "blue"},
		{"x": 5.0, "y": 6.0, "color": "red"},
	}
	for _, r := range rows {
		_, err := table.Insert(r)
		require.NoError(t, err)
	}
	return db
}

func collect(t *testing.T, n Node, db *memstore.DB) []rowctx.Context {
	t.Helper()
	var out []rowctx.Context
	for ctx, err := range n.Execute(db) {
		require.NoError(t, err)
		out = append(out, ctx)
	}
	return out
}

func colorEq(schema *dbschema.TableSchema, table, value string) expr.Expr {
	col, _ := schema.Column("color")
	return expr.NewCompare(expr.NewColumnRef(col, table), expr.OpEq, expr.NewLiteral(value, coltype.String))
}

func TestTableScanEmitsInsertionOrder(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "")
	rows := collect(t, scan, db)
	require.Len(t, rows, 3)
	assert.Equal(t, "green", rows[0]["points"]["color"])
	assert.Equal(t, "red", rows[2]["points"]["color"])
}

func TestFilterMatchesGreen(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "")
	schema, err := scan.Schema(db)
	require.NoError(t, err)

	filtered := NewFilter(scan, colorEq(schema, "points", "green"))
	rows := collect(t, filtered, db)
	require.Len(t, rows, 1)
	assert.Equal(t, "green", rows[0]["points"]["color"])
}

func TestFilterPreservesOrderAndNeverGrows(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "")
	schema, err := scan.Schema(db)
	require.NoError(t, err)

	col, _ := schema.Column("x")
	lte := expr.NewCompare(expr.NewColumnRef(col, "points"), expr.OpLte, expr.NewLiteral(3.5, coltype.Float))
	filtered := NewFilter(scan, lte)
	rows := collect(t, filtered, db)
	assert.LessOrEqual(t, len(rows), 3)
	assert.Equal(t, "green", rows[0]["points"]["color"])
	assert.Equal(t, "blue", rows[1]["points"]["color"])
}

func TestLimitTruncatesToPrefix(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "")
	limited := NewLimit(scan, 2)
	rows := collect(t, limited, db)
	require.Len(t, rows, 2)
	assert.Equal(t, "green", rows[0]["points"]["color"])
	assert.Equal(t, "blue", rows[1]["points"]["color"])
}

func TestLimitZero(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "")
	limited := NewLimit(scan, 0)
	rows := collect(t, limited, db)
	assert.Len(t, rows, 0)
}

func TestOrderByDescending(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "")
	schema, err := scan.Schema(db)
	require.NoError(t, err)
	col, _ := schema.Column("x")

	ordered := NewOrderBy(scan, []Ordering{{Expr: expr.NewColumnRef(col, "points"), Direction: Desc}})
	rows := collect(t, ordered, db)
	require.Len(t, rows, 3)
	assert.Equal(t, "red", rows[0]["points"]["color"])
	assert.Equal(t, "green", rows[2]["points"]["color"])
}

func TestOrderByNullsLastAscFirstDesc(t *testing.T) {
	db := memstore.New()
	schema, err := dbschema.NewTableSchema("t").With(
		dbschema.NewColumn("v", coltype.Float).Nullable(),
	)
	require.NoError(t, err)
	table, err := db.GetOrCreateTable(schema)
	require.NoError(t, err)
	for _, v := range []any{2.0, nil, 1.0} {
		_, err := table.Insert(dbschema.InsertRecord{"v": v})
		require.NoError(t, err)
	}

	scan := NewTableScan("t", "")
	col, _ := schema.Column("v")

	ascending := NewOrderBy(scan, []Ordering{{Expr: expr.NewColumnRef(col, "t"), Direction: Asc}})
	rows := collect(t, ascending, db)
	require.Len(t, rows, 3)
	assert.Nil(t, rows[2]["t"]["v"])

	descending := NewOrderBy(scan, []Ordering{{Expr: expr.NewColumnRef(col, "t"), Direction: Desc}})
	rows = collect(t, descending, db)
	require.Len(t, rows, 3)
	assert.Nil(t, rows[0]["t"]["v"])
}

func setupCatsAndOwners(t *testing.T) *memstore.DB {
	t.Helper()
	db := memstore.New()

	catsSchema, err := dbschema.NewTableSchema("cats").With(
		dbschema.NewColumn("id", coltype.Int32),
		dbschema.NewColumn("name", coltype.String),
	)
	require.NoError(t, err)
	cats, err := db.GetOrCreateTable(catsSchema)
	require.NoError(t, err)
	_, err = cats.Insert(dbschema.InsertRecord{"id": int32(1), "name": "fluffy"})
	require.NoError(t, err)
	_, err = cats.Insert(dbschema.InsertRecord{"id": int32(2), "name": "mittens"})
	require.NoError(t, err)

	humansSchema, err := dbschema.NewTableSchema("humans").With(
		dbschema.NewColumn("id", coltype.Int32),
		dbschema.NewColumn("name", coltype.String),
	)
	require.NoError(t, err)
	humans, err := db.GetOrCreateTable(humansSchema)
	require.NoError(t, err)
	_, err = humans.Insert(dbschema.InsertRecord{"id": int32(1), "name": "alice"})
	require.NoError(t, err)
	_, err = humans.Insert(dbschema.InsertRecord{"id": int32(2), "name": "bob"})
	require.NoError(t, err)

	ownersSchema, err := dbschema.NewTableSchema("cat_owners").With(
		dbschema.NewColumn("cat_id", coltype.Int32),
		dbschema.NewColumn("human_id", coltype.Int32),
	)
	require.NoError(t, err)
	owners, err := db.GetOrCreateTable(ownersSchema)
	require.NoError(t, err)
	for _, r := range []dbschema.InsertRecord{
		{"cat_id": int32(1), "human_id": int32(1)},
		{"cat_id": int32(2), "human_id": int32(2)},
		{"cat_id": int32(2), "human_id": int32(1)},
	} {
		_, err := owners.Insert(r)
		require.NoError(t, err)
	}
	return db
}

func TestJoinCrossProductSize(t *testing.T) {
	db := setupPoints(t)
	left := NewTableScan("points", "l")
	right := NewTableScan("points", "r")
	cross := NewJoin(left, right, expr.NewLiteral(true, coltype.Boolean))
	rows := collect(t, cross, db)
	assert.Len(t, rows, 9)
}

func TestJoinPreservesLeftMajorOrder(t *testing.T) {
	db := setupCatsAndOwners(t)

	cats := NewTableScan("cats", "cats")
	owners := NewTableScan("cat_owners", "cat_owners")
	catsSchema, err := cats.Schema(db)
	require.NoError(t, err)
	ownersSchema, err := owners.Schema(db)
	require.NoError(t, err)

	catID, _ := catsSchema.Column("id")
	ownerCatID, _ := ownersSchema.Column("cat_id")
	onExpr := expr.NewCompare(
		expr.NewColumnRef(catID, "cats"), expr.OpEq, expr.NewColumnRef(ownerCatID, "cat_owners"))
	catOwnerJoin := NewJoin(cats, owners, onExpr)

	humans := NewTableScan("humans", "humans")
	humansSchema, err := humans.Schema(db)
	require.NoError(t, err)
	ownerHumanID, _ := ownersSchema.Column("human_id")
	humanID, _ := humansSchema.Column("id")
	onExpr2 := expr.NewCompare(
		expr.NewColumnRef(humanID, "humans"), expr.OpEq, expr.NewColumnRef(ownerHumanID, "cat_owners"))
	full := NewJoin(catOwnerJoin, humans, onExpr2)

	rows := collect(t, full, db)
	require.Len(t, rows, 3)
	assert.Equal(t, "fluffy", rows[0]["cats"]["name"])
	assert.Equal(t, "alice", rows[0]["humans"]["name"])
	assert.Equal(t, "mittens", rows[1]["cats"]["name"])
	assert.Equal(t, "bob", rows[1]["humans"]["name"])
	assert.Equal(t, "mittens", rows[2]["cats"]["name"])
	assert.Equal(t, "alice", rows[2]["humans"]["name"])
}

func TestSelectProjectsAndRenames(t *testing.T) {
	db := setupPoints(t)
	scan := NewTableScan("points", "points")
	schema, err := scan.Schema(db)
	require.NoError(t, err)
	col, _ := schema.Column("x")

	sel := NewSelect(scan, "")
	sel.AddColumn("pointx", expr.NewColumnRef(col, "points"))
	rows := collect(t, sel, db)
	require.Len(t, rows, 3)
	assert.Equal(t, 1.0, rows[0][rowctx.RootKey]["pointx"])
}

func TestAggregateMaxCountArrayAgg(t *testing.T) {
	db := setupCatsAndOwners(t)
	scan := NewTableScan("cats", "cats")
	schema, err := scan.Schema(db)
	require.NoError(t, err)
	nameCol, _ := schema.Column("name")

	multi := NewMultiAggregation().
		Add("num_cats", NewCountAggregation()).
		Add("names", NewArrayAggregation(expr.NewColumnRef(nameCol, "cats")))
	agg := NewAggregate(scan, multi)
	rows := collect(t, agg, db)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(2), rows[0][rowctx.RootKey]["num_cats"])
	assert.Equal(t, []any{"fluffy", "mittens"}, rows[0][rowctx.RootKey]["names"])
}

func TestMaxAggregationReturnsNilOnEmptyInput(t *testing.T) {
	db := memstore.New()
	schema, err := dbschema.NewTableSchema("empty").With(dbschema.NewColumn("v", coltype.Float))
	require.NoError(t, err)
	_, err = db.GetOrCreateTable(schema)
	require.NoError(t, err)

	scan := NewTableScan("empty", "")
	col, _ := schema.Column("v")
	multi := NewMultiAggregation().Add("max_v", NewMaxAggregation(expr.NewColumnRef(col, "empty")))
	agg := NewAggregate(scan, multi)
	rows := collect(t, agg, db)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0][rowctx.RootKey]["max_v"])
}
