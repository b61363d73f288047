package planbuilder_test

import (
	"testing"

	"github.com/pcardune/pauldb/astconv"
	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/memstore"
	"github.com/pcardune/pauldb/plan"
	"github.com/pcardune/pauldb/planbuilder"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses and executes every statement in sql in order against db,
// returning the collected rows of the last statement seen (empty for
// CREATE/INSERT).
func run(t *testing.T, db storage.DbFile, sql string) []rowctx.Row {
	t.Helper()
	stmts, err := astconv.Parse(sql)
	require.NoError(t, err)

	registry := coltype.NewRegistry()
	var last []rowctx.Row
	for _, stmt := range stmts {
		node, err := planbuilder.Translate(stmt, db, registry)
		require.NoError(t, err)
		if node == nil {
			last = nil
			continue
		}
		last = collect(t, node, db)
	}
	return last
}

func collect(t *testing.T, node plan.Node, db storage.DbFile) []rowctx.Row {
	t.Helper()
	var rows []rowctx.Row
	for ctx, err := range node.Execute(db) {
		require.NoError(t, err)
		rows = append(rows, ctx[rowctx.RootKey])
	}
	return rows
}

func TestCreateInsertSelectScenario(t *testing.T) {
	db := memstore.New()
	run(t, db, `CREATE TABLE points (x FLOAT, y FLOAT, color TEXT)`)
	run(t, db, `INSERT INTO points (x,y,color) VALUES (1.0,2.0,'green')`)
	run(t, db, `INSERT INTO points (x,y,color) VALUES (3.0,4.0,'blue')`)
	run(t, db, `INSERT INTO points (x,y,color) VALUES (5.0,6.0,'red')`)

	rows := run(t, db, `SELECT * FROM points WHERE color='green'`)
	require.Len(t, rows, 1)
	assert.Equal(t, "green", rows[0]["color"])
	assert.Equal(t, 1.0, rows[0]["x"])

	rows = run(t, db, `SELECT * FROM points WHERE x<=3.5 AND color<'green' OR y<3.0`)
	require.Len(t, rows, 2)
	assert.Equal(t, "green", rows[0]["color"])
	assert.Equal(t, "blue", rows[1]["color"])

	rows = run(t, db, `SELECT x as pointx FROM points WHERE x<=3.5 AND color<'green' OR y<3.0`)
	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0]["pointx"])
	assert.Equal(t, 3.0, rows[1]["pointx"])

	rows = run(t, db, `SELECT color FROM points WHERE x>1 ORDER BY x DESC LIMIT 1`)
	require.Len(t, rows, 1)
	assert.Equal(t, "red", rows[0]["color"])
}

func TestJoinScenario(t *testing.T) {
	db := memstore.New()
	run(t, db, `CREATE TABLE cats (id INT, name TEXT, age INT)`)
	run(t, db, `CREATE TABLE humans (id INT, name TEXT)`)
	run(t, db, `CREATE TABLE cat_owners (cat_id INT, human_id INT)`)

	run(t, db, `INSERT INTO cats (id,name,age) VALUES (1,'fluffy',3)`)
	run(t, db, `INSERT INTO cats (id,name,age) VALUES (2,'mittens',5)`)
	run(t, db, `INSERT INTO humans (id,name) VALUES (1,'alice')`)
	run(t, db, `INSERT INTO humans (id,name) VALUES (2,'bob')`)
	run(t, db, `INSERT INTO cat_owners (cat_id,human_id) VALUES (1,1)`)
	run(t, db, `INSERT INTO cat_owners (cat_id,human_id) VALUES (2,2)`)
	run(t, db, `INSERT INTO cat_owners (cat_id,human_id) VALUES (2,1)`)

	rows := run(t, db, `SELECT cats.name as cat, humans.name as owner FROM cats
		JOIN cat_owners ON cats.id=cat_owners.cat_id
		JOIN humans ON humans.id=cat_owners.human_id`)
	require.Len(t, rows, 3)
	assert.Equal(t, "fluffy", rows[0]["cat"])
	assert.Equal(t, "alice", rows[0]["owner"])
	assert.Equal(t, "mittens", rows[1]["cat"])
	assert.Equal(t, "bob", rows[1]["owner"])
	assert.Equal(t, "mittens", rows[2]["cat"])
	assert.Equal(t, "alice", rows[2]["owner"])
}

func TestAggregationScenario(t *testing.T) {
	db := memstore.New()
	run(t, db, `CREATE TABLE cats (id INT, name TEXT, age INT)`)
	run(t, db, `INSERT INTO cats (id,name,age) VALUES (1,'fluffy',3)`)
	run(t, db, `INSERT INTO cats (id,name,age) VALUES (2,'mittens',5)`)

	rows := run(t, db, `SELECT MAX(age) as max_age FROM cats`)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(5), rows[0]["max_age"])

	rows = run(t, db, `SELECT COUNT(*) as num_cats FROM cats`)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 2, rows[0]["num_cats"])

	rows = run(t, db, `SELECT ARRAY_AGG(name) as names FROM cats`)
	require.Len(t, rows, 1)
	assert.Equal(t, []any{"fluffy", "mittens"}, rows[0]["names"])
}

func TestAmbiguousColumnRequiresQualification(t *testing.T) {
	db := memstore.New()
	run(t, db, `CREATE TABLE cats (id INT, name TEXT)`)
	run(t, db, `CREATE TABLE humans (id INT, name TEXT)`)
	run(t, db, `INSERT INTO cats (id,name) VALUES (1,'fluffy')`)
	run(t, db, `INSERT INTO humans (id,name) VALUES (1,'alice')`)

	stmts, err := astconv.Parse(`SELECT name FROM cats JOIN humans ON cats.id=humans.id`)
	require.NoError(t, err)
	node, err := planbuilder.Translate(stmts[0], db, coltype.NewRegistry())
	require.NoError(t, err)

	var sawErr bool
	for _, err := range node.Execute(db) {
		if err != nil {
			sawErr = true
		}
	}
	assert.True(t, sawErr, "expected an AmbiguousError while evaluating the unqualified column")
}

func TestUnsupportedClausesRejected(t *testing.T) {
	db := memstore.New()
	run(t, db, `CREATE TABLE cats (id INT, name TEXT)`)

	cases := []string{
		`SELECT name, COUNT(*) FROM cats GROUP BY name`,
		`SELECT DISTINCT name FROM cats`,
	}
	for _, sql := range cases {
		stmts, err := astconv.Parse(sql)
		require.NoError(t, err)
		_, err = planbuilder.Translate(stmts[0], db, coltype.NewRegistry())
		assert.Error(t, err, sql)
	}
}
