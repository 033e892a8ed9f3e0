// Package format holds the static autopilot type-code table and the
// precompiled binary descriptor logic derived from it. It knows nothing
// about records, layouts, or files — only how a single field type code
// maps to a wire shape, size, and scaling rule.
package format

// Shape identifies the binary representation of a single field.
type Shape int

const (
	ShapeI8 Shape = iota
	ShapeU8
	ShapeI16
	ShapeU16
	ShapeI32
	ShapeU32
	ShapeF32
	ShapeF64
	ShapeI64
	ShapeU64
	ShapeASCII4
	ShapeASCII16
	ShapeASCII64
	ShapeInt16Array32 // 32 x int16, code 'a'
)

// codeInfo describes one autopilot type character: its wire shape, its
// fixed byte size, and whether a post-unpack scaling divisor applies.
type codeInfo struct {
	shape Shape
	size  int
	scale float64 // 0 means "no scaling"
}

// codeTable is the static map from autopilot type character to field shape,
// byte size, and scaling policy (spec §4.1).
var codeTable = map[byte]codeInfo{
	'b': {ShapeI8, 1, 0},
	'B': {ShapeU8, 1, 0},
	'M': {ShapeU8, 1, 0},
	'h': {ShapeI16, 2, 0},
	'H': {ShapeU16, 2, 0},
	'i': {ShapeI32, 4, 0},
	'L': {ShapeI32, 4, 1e7},
	'e': {ShapeI32, 4, 100},
	'I': {ShapeU32, 4, 0},
	'E': {ShapeU32, 4, 100},
	'f': {ShapeF32, 4, 0},
	'd': {ShapeF64, 8, 0},
	'q': {ShapeI64, 8, 0},
	'Q': {ShapeU64, 8, 0},
	'c': {ShapeI16, 2, 100},
	'C': {ShapeU16, 2, 100},
	'n': {ShapeASCII4, 4, 0},
	'N': {ShapeASCII16, 16, 0},
	'Z': {ShapeASCII64, 64, 0},
	'a': {ShapeInt16Array32, 64, 0},
}

// ReservedBinaryFields names fields that are always emitted as raw bytes,
// even when their type code would otherwise ASCII-decode (spec §3, §4.4).
var ReservedBinaryFields = map[string]bool{
	"Data":  true,
	"Data0": true,
	"Data1": true,
}

// Lookup returns the shape and size for a type code, or ok=false if the
// code is unknown. Unknown codes contribute no bytes and no field.
func Lookup(code byte) (shape Shape, size int, ok bool) {
	info, ok := codeTable[code]
	if !ok {
		return 0, 0, false
	}
	return info.shape, info.size, true
}

// Scale returns the divisor for a type code's scaling policy, and whether
// scaling applies at all. L divides by 1e7; c, C, e, E divide by 100.
func Scale(code byte) (divisor float64, ok bool) {
	info, known := codeTable[code]
	if !known || info.scale == 0 {
		return 0, false
	}
	return info.scale, true
}

// Field is one entry of a precompiled binary descriptor: where a field
// starts within a record's payload, what shape it decodes as, and its name.
type Field struct {
	Name   string
	Code   byte
	Shape  Shape
	Offset int // relative to the payload start (3 bytes past the sync marker)
	Size   int
}

// Descriptor is the precompiled, ordered sequence of field unpack
// instructions for one record layout — the "binary_descriptor" of spec §3.
// Block decoders walk it directly with no string-level format
// interpretation on the hot path (design note in spec §9).
type Descriptor []Field

// Compile derives a Descriptor from parallel field-name and field-code
// sequences, as the Format Registry does for every FMT definition it
// accepts. It returns the total payload size (sum of known-code sizes) and
// ErrUnknownCode is never returned: unknown codes are simply skipped,
// contributing no bytes and no field, per spec §4.1.
func Compile(names []string, codes []byte) (Descriptor, int) {
	desc := make(Descriptor, 0, len(codes))
	offset := 0
	for i, code := range codes {
		shape, size, ok := Lookup(code)
		if !ok {
			continue
		}
		name := ""
		if i < len(names) {
			name = names[i]
		}
		desc = append(desc, Field{
			Name:   name,
			Code:   code,
			Shape:  shape,
			Offset: offset,
			Size:   size,
		})
		offset += size
	}
	return desc, offset
}
