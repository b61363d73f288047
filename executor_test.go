package pauldb_test

import (
	"testing"

	"github.com/pcardune/pauldb"
	"github.com/pcardune/pauldb/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSingleStatementReturnsScalar(t *testing.T) {
	db := pauldb.Open(memstore.New())
	_, err := db.Execute(`CREATE TABLE points (x FLOAT, y FLOAT, color TEXT)`)
	require.NoError(t, err)

	result, err := db.Execute(`INSERT INTO points (x,y,color) VALUES (1.0,2.0,'green')`)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = db.Execute(`SELECT * FROM points WHERE color='green'`)
	require.NoError(t, err)
	rows, ok := result.([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "green", rows[0]["color"])
}

func TestExecuteMultiStatementReturnsSliceOfResults(t *testing.T) {
	db := pauldb.Open(memstore.New())
	result, err := db.Execute(
		`CREATE TABLE points (x FLOAT, color TEXT); ` +
			`INSERT INTO points (x,color) VALUES (1.0,'green'); ` +
			`SELECT * FROM points`)
	require.NoError(t, err)

	results, ok := result.([]any)
	require.True(t, ok)
	require.Len(t, results, 3)
	assert.Nil(t, results[0])
	assert.Nil(t, results[1])
	rows, ok := results[2].([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestExecuteBatchAbortsAtFirstFailureButKeepsPriorResults(t *testing.T) {
	db := pauldb.Open(memstore.New())
	results, err := db.ExecuteBatch(
		`CREATE TABLE points (x FLOAT); ` +
			`INSERT INTO missing_table (x) VALUES (1.0)`)
	assert.Error(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0])
}

func TestMigrateCreatesTargetSchema(t *testing.T) {
	db := pauldb.Open(memstore.New())

	target, err := pauldb.NewDatabase()
	require.NoError(t, err)
	cats, err := pauldb.NewTable("cats").With(pauldb.NewColumn("name", pauldb.StringType))
	require.NoError(t, err)
	target, err = target.WithTables(cats)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(target))

	result, err := db.Execute(`INSERT INTO cats (name) VALUES ('fluffy')`)
	require.NoError(t, err)
	assert.Nil(t, result)
}
