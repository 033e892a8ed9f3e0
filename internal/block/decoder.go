package block

import (
	"bytes"

	"github.com/joshuapare/dataflash/internal/buf"
	"github.com/joshuapare/dataflash/internal/format"
	"github.com/joshuapare/dataflash/internal/record"
	"github.com/joshuapare/dataflash/internal/registry"
)

// Stats accumulates best-effort decode counters for one block. It is
// optional: callers that pass a nil *Stats pay nothing for it on the hot
// path.
type Stats struct {
	Decoded     int
	ResyncBytes int
	Skipped     int
}

func (s *Stats) addDecoded() {
	if s != nil {
		s.Decoded++
	}
}

func (s *Stats) addResync() {
	if s != nil {
		s.ResyncBytes++
	}
}

func (s *Stats) addSkipped() {
	if s != nil {
		s.Skipped++
	}
}

// ResyncReason identifies why the decoder is sliding the cursor forward by
// a single byte instead of a whole record. Used only for Debug logging.
type ResyncReason int

const (
	ResyncUnknownType ResyncReason = iota
	ResyncUnpackFailure
)

// Logf is called on every local recovery event (spec §7: "recovered
// locally by 1-byte resync; not reported"). A nil Logf is a no-op; the root
// package always installs a callback that forwards to the internal/logx
// logger, which discards everything unless a logger is set.
type Logf func(offset int, reason ResyncReason)

// Decode scans [rng.Start, rng.End) in data for records, resolving each via
// snap, optionally filtered to wantedType, and returns them in byte-offset
// order (spec §4.4). Failures are always local: no error ever propagates
// out of a block; the stream is best-effort past corruption (spec §7).
func Decode(data []byte, rng Range, snap registry.Snapshot, wantedType *byte, stats *Stats, onResync Logf) []record.Record {
	var out []record.Record

	p := rng.Start
	for p < rng.End {
		// SCAN
		idx := bytes.Index(data[p:rng.End], syncMarker)
		if idx < 0 {
			break
		}
		p += idx

		if p+3 > rng.End {
			break
		}

		// TYPE
		typeCode := data[p+2]
		layout, ok := snap.Get(typeCode)
		if !ok {
			logResync(onResync, p, ResyncUnknownType)
			stats.addResync()
			p++
			continue
		}

		// FMT records only describe layouts (consumed by the prepass); they
		// are skipped whole and never emitted.
		if typeCode == registry.FMTTypeCode {
			p += registry.FMTLength
			continue
		}

		// FILTER
		if wantedType != nil && *wantedType != typeCode {
			stats.addSkipped()
			p += layout.Length
			continue
		}

		// UNPACK — reads against the whole mapping, not just the block's
		// end, matching the resync contract: a record whose declared
		// length runs past end-of-file is an unpack failure, recovered by
		// a 1-byte resync (which will in turn fail SCAN and terminate,
		// effectively dropping the truncated trailing record — spec §8).
		payload, ok := buf.Slice(data, p+3, layout.Length-3)
		if !ok {
			logResync(onResync, p, ResyncUnpackFailure)
			stats.addResync()
			p++
			continue
		}

		fields, ok := unpackFields(payload, layout)
		if !ok {
			logResync(onResync, p, ResyncUnpackFailure)
			stats.addResync()
			p++
			continue
		}

		// EMIT
		fields = append(fields, record.Field{Name: record.PacketTypeField, Value: layout.Name})
		out = append(out, record.Record{TypeCode: typeCode, Offset: p, Fields: fields})
		stats.addDecoded()
		p += layout.Length
	}

	return out
}

// unpackFields applies layout.Descriptor to payload, then the POSTPROCESS
// step (spec §4.4 step 5): ASCII-decoding non-reserved string fields and
// leaving scaling to format.Decode, which already applied it.
func unpackFields(payload []byte, layout registry.Layout) ([]record.Field, bool) {
	fields := make([]record.Field, 0, len(layout.Descriptor))
	for _, f := range layout.Descriptor {
		v, err := format.Decode(payload, f)
		if err != nil {
			return nil, false
		}
		if raw, isBytes := v.([]byte); isBytes && !format.ReservedBinaryFields[f.Name] {
			v = format.DecodeASCII(raw)
		}
		fields = append(fields, record.Field{Name: f.Name, Value: v})
	}
	return fields, true
}

func logResync(onResync Logf, offset int, reason ResyncReason) {
	if onResync != nil {
		onResync(offset, reason)
	}
}
