package memstore

import (
	"testing"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleSchema(t *testing.T) *dbschema.TableSchema {
	t.Helper()
	schema, err := dbschema.NewTableSchema("people").With(
		dbschema.NewColumn("name", coltype.String),
		dbschema.NewColumn("age", coltype.Int32),
	)
	require.NoError(t, err)
	return schema
}

func TestGetOrCreateTableIsIdempotent(t *testing.T) {
	db := New()
	t1, err := db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)
	t2, err := db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)
	assert.Same(t, t1, t2)
}

func TestGetTableNotFound(t *testing.T) {
	db := New()
	_, err := db.GetTable("missing")
	assert.Error(t, err)
}

func TestInsertThenIterateInInsertionOrder(t *testing.T) {
	db := New()
	table, err := db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)

	_, err = table.Insert(dbschema.InsertRecord{"name": "alice", "age": int32(30)})
	require.NoError(t, err)
	_, err = table.Insert(dbschema.InsertRecord{"name": "bob", "age": int32(25)})
	require.NoError(t, err)

	var names []string
	for rec, err := range table.Iterate() {
		require.NoError(t, err)
		names = append(names, rec["name"].(string))
	}
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func TestInsertRejectsInvalidValue(t *testing.T) {
	db := New()
	table, err := db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)

	_, err = table.Insert(dbschema.InsertRecord{"name": "alice", "age": "not a number"})
	assert.Error(t, err)
}

func TestRenameTable(t *testing.T) {
	db := New()
	_, err := db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)

	require.NoError(t, db.RenameTable("people", "humans"))
	_, err = db.GetTable("people")
	assert.Error(t, err)

	table, err := db.GetTable("humans")
	require.NoError(t, err)
	assert.Equal(t, "humans", table.Schema().Name())
}

func TestDropTable(t *testing.T) {
	db := New()
	_, err := db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)

	require.NoError(t, db.DropTable("people"))
	_, err = db.GetTable("people")
	assert.Error(t, err)
	assert.Error(t, db.DropTable("people"))
}

func TestGetSchemasOrThrowRequiresAtLeastOneTable(t *testing.T) {
	db := New()
	_, err := db.GetSchemasOrThrow()
	assert.Error(t, err)

	_, err = db.GetOrCreateTable(peopleSchema(t))
	require.NoError(t, err)
	schemas, err := db.GetSchemasOrThrow()
	require.NoError(t, err)
	assert.Len(t, schemas, 1)
}
