package registry

import (
	"bytes"

	"github.com/joshuapare/dataflash/internal/logx"
)

// syncMarker is the two-byte sequence that precedes every record.
var syncMarker = []byte{0xA3, 0x95}

// fmtMarker is the three-byte sequence (sync + FMT type byte) the prepass
// searches for.
var fmtMarker = []byte{0xA3, 0x95, FMTTypeCode}

// fmtPayloadSize is the size of an FMT record's payload, following its
// 3-byte header: Type(1) + Length(1) + Name(4) + Format(16) + Columns(64).
const fmtPayloadSize = 1 + 1 + 4 + 16 + 64

// Prepass scans the entire file for FMT records (type code 128, fixed
// length 89) and populates a Format Registry before any block is
// dispatched (spec §4.2). FMT records may appear anywhere in the file, not
// only at the head.
func Prepass(data []byte) Snapshot {
	b := NewBuilder()

	pos := 0
	for {
		idx := bytes.Index(data[pos:], fmtMarker)
		if idx < 0 {
			break
		}
		pos += idx

		payload, ok := fmtPayloadAt(data, pos+3)
		if !ok {
			// Short input: this can't be a full FMT record.
			logx.Get().Debug("dataflash: resync", "offset", pos, "reason", "malformed_fmt")
			pos++
			continue
		}

		typeCode := payload[0]
		length := int(payload[1])
		name := payload[2:6]
		fmtChars := payload[6:22]
		columns := payload[22:86]

		layout, ok := newLayoutFromFMT(typeCode, length, name, fmtChars, columns)
		if !ok {
			logx.Get().Debug("dataflash: resync", "offset", pos, "reason", "malformed_fmt")
			pos++
			continue
		}
		b.Register(layout)
		pos += FMTLength
	}

	return b.Freeze()
}

// fmtPayloadAt returns the fmtPayloadSize bytes starting at off, or
// ok=false if the buffer is too short.
func fmtPayloadAt(data []byte, off int) ([]byte, bool) {
	if off < 0 || off+fmtPayloadSize > len(data) {
		return nil, false
	}
	return data[off : off+fmtPayloadSize], true
}
