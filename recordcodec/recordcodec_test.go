package recordcodec

import (
	"testing"

	"github.com/pcardune/pauldb/coltype"
	"github.com/pcardune/pauldb/dbschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGoldenRecord asserts the exact byte layout a fixed record encodes to.
func TestGoldenRecord(t *testing.T) {
	table := dbschema.NewTableSchema("people")
	table, err := table.With(
		dbschema.NewColumn("age", coltype.Uint32),
		dbschema.NewColumn("likesIceCream", coltype.Boolean),
		dbschema.NewColumn("name", coltype.String),
	)
	require.NoError(t, err)

	codec, ok := ForTable(table)
	require.True(t, ok)

	buf, err := codec.Encode(dbschema.StoredRecord{
		"age":           uint32(25),
		"likesIceCream": true,
		"name":          "Alice",
	})
	require.NoError(t, err)

	want := []byte{
		0, 0, 0, 14,
		0, 0, 0, 25,
		1,
		0, 0, 0, 5, 'A', 'l', 'i', 'c', 'e',
	}
	assert.Equal(t, want, buf)
	assert.Len(t, buf, 18)

	rec, n, err := codec.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, dbschema.StoredRecord{
		"age":           uint32(25),
		"likesIceCream": true,
		"name":          "Alice",
	}, rec)
}

func TestForTableAbsentWithoutCodec(t *testing.T) {
	table := dbschema.NewTableSchema("t")
	table, err := table.With(dbschema.NewColumn("computed_input", coltype.Never))
	require.NoError(t, err)

	_, ok := ForTable(table)
	assert.False(t, ok)
}

func TestSizeMatchesEncodedLength(t *testing.T) {
	table := dbschema.NewTableSchema("points")
	table, err := table.With(
		dbschema.NewColumn("x", coltype.Float),
		dbschema.NewColumn("color", coltype.String),
	)
	require.NoError(t, err)
	codec, ok := ForTable(table)
	require.True(t, ok)

	rec := dbschema.StoredRecord{"x": 1.5, "color": "green"}
	buf, err := codec.Encode(rec)
	require.NoError(t, err)

	size, err := codec.Size(rec)
	require.NoError(t, err)
	assert.Equal(t, len(buf), size)
}
