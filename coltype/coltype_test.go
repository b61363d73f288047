package coltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullableAcceptsNilAndInner(t *testing.T) {
	nt := Nullable(Uint32)
	assert.Equal(t, "uint32?", nt.Name)
	assert.True(t, nt.IsValid(nil))
	assert.True(t, nt.IsValid(uint32(5)))
	assert.False(t, nt.IsValid("nope"))
}

func TestArraySuffixAndValidation(t *testing.T) {
	at := Array(String)
	assert.Equal(t, "string[]", at.Name)
	assert.True(t, at.IsValid([]any{"a", "b"}))
	assert.False(t, at.IsValid([]any{"a", 5}))
	assert.False(t, at.IsValid("not an array"))
}

func TestCombinatorsStackLeftToRight(t *testing.T) {
	// Nullable(Array(Nullable(String))) should read as string?[]?.
	nt := Nullable(Array(Nullable(String)))
	assert.Equal(t, "string?[]?", nt.Name)
}

func TestStringCodecRoundTrip(t *testing.T) {
	buf, err := String.Codec.Encode(nil, "Alice")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 5, 'A', 'l', 'i', 'c', 'e'}, buf)

	v, n, err := String.Codec.Decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "Alice", v)
}

func TestUint32CodecRoundTrip(t *testing.T) {
	buf, err := Uint32.Codec.Encode(nil, uint32(25))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 25}, buf)

	v, n, err := Uint32.Codec.Decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint32(25), v)
}

func TestNullableCodecRoundTrip(t *testing.T) {
	nt := Nullable(Uint32)

	buf, err := nt.Codec.Encode(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0}, buf)
	v, n, err := nt.Codec.Decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Nil(t, v)

	buf, err = nt.Codec.Encode(nil, uint32(7))
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 7}, buf)
	v, n, err = nt.Codec.Decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, uint32(7), v)
}

func TestArrayCodecRoundTrip(t *testing.T) {
	at := Array(Uint16)
	buf, err := at.Codec.Encode(nil, []any{uint16(1), uint16(2), uint16(3)})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 3, 0, 1, 0, 2, 0, 3}, buf)

	v, n, err := at.Codec.Decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, []any{uint16(1), uint16(2), uint16(3)}, v)
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()

	tt, err := r.FromSQL("TEXT")
	assert.NoError(t, err)
	assert.Equal(t, String.Name, tt.Name)

	tt, err = r.FromSQL("INT[]")
	assert.NoError(t, err)
	assert.Equal(t, "int32[]", tt.Name)

	name, err := r.ToSQL(Float)
	assert.NoError(t, err)
	assert.Equal(t, "FLOAT", name)

	_, err = r.FromSQL("NOPE")
	assert.Error(t, err)
}
