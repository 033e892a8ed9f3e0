package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	shape, size, ok := Lookup('L')
	require.True(t, ok)
	assert.Equal(t, ShapeI32, shape)
	assert.Equal(t, 4, size)

	_, _, ok = Lookup('?')
	assert.False(t, ok)
}

func TestScale(t *testing.T) {
	for _, code := range []byte{'c', 'C', 'e', 'E'} {
		div, ok := Scale(code)
		require.True(t, ok, "code %q should scale", code)
		assert.Equal(t, 100.0, div)
	}
	div, ok := Scale('L')
	require.True(t, ok)
	assert.Equal(t, 1e7, div)

	_, ok = Scale('f')
	assert.False(t, ok)
}

func TestCompileSkipsUnknownCodes(t *testing.T) {
	names := []string{"A", "bogus", "B"}
	codes := []byte{'f', '?', 'H'}

	desc, total := Compile(names, codes)
	require.Len(t, desc, 2)
	assert.Equal(t, "A", desc[0].Name)
	assert.Equal(t, 0, desc[0].Offset)
	assert.Equal(t, "B", desc[1].Name)
	assert.Equal(t, 4, desc[1].Offset)
	assert.Equal(t, 6, total)
}

func TestReservedBinaryFields(t *testing.T) {
	assert.True(t, ReservedBinaryFields["Data"])
	assert.True(t, ReservedBinaryFields["Data0"])
	assert.True(t, ReservedBinaryFields["Data1"])
	assert.False(t, ReservedBinaryFields["Latitude"])
}
