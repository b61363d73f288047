package migrate_test

import (
	"testing"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/memstore"
	"github.com/pcardune/pauldb/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, name string, cols ...dbschema.StoredColumn) *dbschema.TableSchema {
	t.Helper()
	schema, err := dbschema.NewTableSchema(name).With(cols...)
	require.NoError(t, err)
	return schema
}

func TestAddMissingTablesIsIdempotent(t *testing.T) {
	db := memstore.New()
	target, err := dbschema.NewDBSchema()
	require.NoError(t, err)
	target, err = target.WithTables(
		mustTable(t, "cats", dbschema.NewColumn("name", coltype.String)),
		mustTable(t, "humans", dbschema.NewColumn("name", coltype.String)),
	)
	require.NoError(t, err)

	m := migrate.New(db, target, nil)
	require.NoError(t, m.AddMissingTables())
	first, err := db.GetSchemas()
	require.NoError(t, err)

	require.NoError(t, m.AddMissingTables())
	second, err := db.GetSchemas()
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Len(t, second, 2)
}

func TestAddMissingColumnPreservesRowsAndFillsDefault(t *testing.T) {
	db := memstore.New()
	oldSchema := mustTable(t, "cats", dbschema.NewColumn("name", coltype.String))
	table, err := db.GetOrCreateTable(oldSchema)
	require.NoError(t, err)
	_, err = table.Insert(dbschema.InsertRecord{"name": "fluffy"})
	require.NoError(t, err)
	_, err = table.Insert(dbschema.InsertRecord{"name": "mittens"})
	require.NoError(t, err)

	newSchema := mustTable(t, "cats",
		dbschema.NewColumn("name", coltype.String),
		dbschema.NewColumn("age", coltype.Int32).DefaultTo(func() any { return int32(0) }),
	)
	target, err := dbschema.NewDBSchema()
	require.NoError(t, err)
	target, err = target.WithTables(newSchema)
	require.NoError(t, err)

	m := migrate.New(db, target, nil)
	require.NoError(t, m.AddMissingColumn("cats", "age"))

	migrated, err := db.GetTable("cats")
	require.NoError(t, err)

	var names []string
	var ages []int32
	for rec, err := range migrated.Iterate() {
		require.NoError(t, err)
		names = append(names, rec["name"].(string))
		ages = append(ages, rec["age"].(int32))
	}
	assert.Equal(t, []string{"fluffy", "mittens"}, names)
	assert.Equal(t, []int32{0, 0}, ages)

	_, err = db.GetTable("$migration_cats")
	assert.Error(t, err, "the placeholder migration table should be dropped once the copy succeeds")
}

func TestAddMissingColumnRequiresDefaultFactory(t *testing.T) {
	db := memstore.New()
	_, err := db.GetOrCreateTable(mustTable(t, "cats", dbschema.NewColumn("name", coltype.String)))
	require.NoError(t, err)

	newSchema := mustTable(t, "cats",
		dbschema.NewColumn("name", coltype.String),
		dbschema.NewColumn("age", coltype.Int32), // no default
	)
	target, err := dbschema.NewDBSchema()
	require.NoError(t, err)
	target, err = target.WithTables(newSchema)
	require.NoError(t, err)

	m := migrate.New(db, target, nil)
	assert.Error(t, m.AddMissingColumn("cats", "age"))
}

func TestAddMissingColumnRequiresExistingTable(t *testing.T) {
	db := memstore.New()
	target, err := dbschema.NewDBSchema()
	require.NoError(t, err)
	target, err = target.WithTables(mustTable(t, "cats", dbschema.NewColumn("age", coltype.Int32)))
	require.NoError(t, err)

	m := migrate.New(db, target, nil)
	assert.Error(t, m.AddMissingColumn("cats", "age"))
}

func TestGetModelValidatesExistenceAndType(t *testing.T) {
	db := memstore.New()
	_, err := db.GetOrCreateTable(mustTable(t, "cats", dbschema.NewColumn("age", coltype.Int32)))
	require.NoError(t, err)

	target, err := dbschema.NewDBSchema()
	require.NoError(t, err)
	target, err = target.WithTables(mustTable(t, "cats", dbschema.NewColumn("age", coltype.String)))
	require.NoError(t, err)

	m := migrate.New(db, target, nil)
	_, _, err = m.GetModel()
	assert.Error(t, err, "age is int32 in storage but string in the target schema")
}

func TestGetModelReturnsLiveTables(t *testing.T) {
	db := memstore.New()
	target, err := dbschema.NewDBSchema()
	require.NoError(t, err)
	target, err = target.WithTables(mustTable(t, "cats", dbschema.NewColumn("age", coltype.Int32)))
	require.NoError(t, err)

	m := migrate.New(db, target, nil)
	require.NoError(t, m.AddMissingTables())

	model, gotTarget, err := m.GetModel()
	require.NoError(t, err)
	assert.Same(t, target, gotTarget)
	require.Contains(t, model, "cats")
}
