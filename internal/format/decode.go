package format

import (
	"strings"

	"github.com/joshuapare/dataflash/internal/buf"
)

// Int16x32 is the decoded shape of the 32-element signed 16-bit array field
// (type code 'a').
type Int16x32 = [32]int16

// Decode unpacks a single field's raw value from payload at f.Offset,
// applying scaling but not ASCII trimming (the caller decides whether a
// field name is in the reserved binary set before trimming — spec §4.4
// POSTPROCESS step). Returns ErrShortBuffer if payload is too short for
// f.Offset+f.Size.
func Decode(payload []byte, f Field) (any, error) {
	if !buf.Has(payload, f.Offset, f.Size) {
		return nil, ErrShortBuffer
	}
	b := payload[f.Offset : f.Offset+f.Size]

	switch f.Shape {
	case ShapeI8:
		return scaleInt(int64(buf.I8(b)), f.Code), nil
	case ShapeU8:
		return scaleInt(int64(buf.U8(b)), f.Code), nil
	case ShapeI16:
		return scaleInt(int64(buf.I16LE(b)), f.Code), nil
	case ShapeU16:
		return scaleInt(int64(buf.U16LE(b)), f.Code), nil
	case ShapeI32:
		return scaleInt(int64(buf.I32LE(b)), f.Code), nil
	case ShapeU32:
		return scaleInt(int64(buf.U32LE(b)), f.Code), nil
	case ShapeI64:
		return int64(buf.I64LE(b)), nil
	case ShapeU64:
		return uint64(buf.U64LE(b)), nil
	case ShapeF32:
		return decodeF32(b), nil
	case ShapeF64:
		return decodeF64(b), nil
	case ShapeASCII4, ShapeASCII16, ShapeASCII64:
		return append([]byte(nil), b...), nil // raw bytes; ASCII decode is the caller's job
	case ShapeInt16Array32:
		var arr Int16x32
		for i := range arr {
			arr[i] = buf.I16LE(b[i*2 : i*2+2])
		}
		return arr, nil
	default:
		return nil, ErrUnknownCode
	}
}

// scaleInt applies the field's scaling policy to an integer value, yielding
// a float64 when scaling applies (spec §4.1/§4.4) or the raw int64
// otherwise. The original integer is not preserved once scaled.
func scaleInt(v int64, code byte) any {
	if divisor, ok := Scale(code); ok {
		return float64(v) / divisor
	}
	return v
}

// DecodeASCII ASCII-decodes a raw byte field, dropping invalid (non-ASCII)
// bytes by elision, then right-strips a trailing run of NUL bytes (spec
// §6). Embedded NULs that aren't part of the trailing run are preserved,
// matching the original decoder's decode-then-rstrip('\x00') behavior.
func DecodeASCII(raw []byte) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		if b < 0x80 {
			sb.WriteByte(b)
		}
	}
	s := sb.String()
	end := len(s)
	for end > 0 && s[end-1] == 0 {
		end--
	}
	return s[:end]
}
