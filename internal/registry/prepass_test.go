package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFMT assembles one on-wire FMT record for the given described type.
func buildFMT(typeCode, length byte, name, format, columns string) []byte {
	rec := make([]byte, FMTLength)
	rec[0], rec[1] = 0xA3, 0x95
	rec[2] = FMTTypeCode
	rec[3] = typeCode
	rec[4] = length
	copy(rec[5:9], name)
	copy(rec[9:25], format)
	copy(rec[25:89], columns)
	return rec
}

func TestPrepassMinimalFMTOnly(t *testing.T) {
	data := buildFMT(128, 89, "FMT", "BB4s16s64s", "Type,Length,Name,Format,Columns")

	snap := Prepass(data)
	layout, ok := snap.Get(128)
	require.True(t, ok)
	assert.Equal(t, "FMT", layout.Name)
	assert.Equal(t, 89, layout.Length)
}

func TestPrepassRegistersNonSelfDescribingType(t *testing.T) {
	data := buildFMT(100, 20, "GPS", "Lf", "Status,Lat")

	snap := Prepass(data)
	layout, ok := snap.Get(100)
	require.True(t, ok)
	assert.Equal(t, "GPS", layout.Name)
	assert.Equal(t, []string{"Status", "Lat"}, layout.FieldNames)

	code, ok := snap.ResolveName("GPS")
	require.True(t, ok)
	assert.Equal(t, byte(100), code)

	// Canonical FMT self-entry is still present, even though this file
	// never defines type 128 explicitly as itself.
	_, ok = snap.Get(FMTTypeCode)
	assert.True(t, ok)
}

func TestPrepassRejectsNonAlphanumericName(t *testing.T) {
	bad := buildFMT(100, 20, "G_S", "Lf", "Status,Lat")
	good := buildFMT(101, 20, "ATT", "Lf", "Status,Lat")
	data := append(bad, good...)

	snap := Prepass(data)
	_, ok := snap.Get(100)
	assert.False(t, ok, "name with underscore must be rejected")

	_, ok = snap.Get(101)
	assert.True(t, ok)
}

func TestPrepassDuplicateTypeCodeLastWins(t *testing.T) {
	first := buildFMT(50, 10, "AAA", "b", "X")
	second := buildFMT(50, 20, "BBB", "i", "Y")
	data := append(first, second...)

	snap := Prepass(data)
	layout, ok := snap.Get(50)
	require.True(t, ok)
	assert.Equal(t, "BBB", layout.Name)
	assert.Equal(t, 20, layout.Length)
}

func TestPrepassFindsFMTAnywhereInFile(t *testing.T) {
	garbage := bytes21()
	fmtRec := buildFMT(77, 10, "XYZ", "b", "V")
	data := append(garbage, fmtRec...)

	snap := Prepass(data)
	_, ok := snap.Get(77)
	assert.True(t, ok)
}

func bytes21() []byte {
	b := make([]byte, 21)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func TestPrepassEmptyFile(t *testing.T) {
	snap := Prepass(nil)
	assert.Equal(t, 1, snap.Len()) // canonical FMT self-entry only
	_, ok := snap.Get(FMTTypeCode)
	assert.True(t, ok)
}
