package format

import (
	"encoding/binary"
	"math"
)

// decodeF32 reads a little-endian IEEE-754 single-precision float.
func decodeF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// decodeF64 reads a little-endian IEEE-754 double-precision float.
func decodeF64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
