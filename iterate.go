package dataflash

import (
	"context"
	"iter"

	"github.com/joshuapare/dataflash/internal/block"
	"github.com/joshuapare/dataflash/internal/gather"
	"github.com/joshuapare/dataflash/internal/logx"
	"github.com/joshuapare/dataflash/internal/record"
)

// Record is a decoded record: its type code and an ordered sequence of
// named fields.
type Record = record.Record

// Field is one (name, value) pair within a Record.
type Field = record.Field

// All returns a lazy sequence of every record in the log, in file order
// (spec §4.6). The sequence is finite and non-restartable: ranging over
// it twice runs the whole pipeline twice.
func (l *Log) All() iter.Seq[Record] {
	return l.iterate(nil)
}

// Iterate returns a lazy sequence of the records named name, in file
// order (spec §4.6). If name is not a layout known to this log's Format
// Registry, the sequence yields nothing.
func (l *Log) Iterate(name string) iter.Seq[Record] {
	if name == "" {
		return l.All()
	}
	code, ok := l.snap.ResolveName(name)
	if !ok {
		return func(func(Record) bool) {}
	}
	return l.iterate(&code)
}

func (l *Log) iterate(wantedType *byte) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		l.mu.Lock()
		closed := l.closed
		l.mu.Unlock()
		if closed {
			return
		}

		ranges := block.Plan(l.data, l.opts.blockSize())
		opts := gather.Options{
			Workers:    l.opts.workers(),
			WantedType: wantedType,
			OnResync:   logResync,
		}
		for rec := range gather.Stream(context.Background(), l.data, l.snap, ranges, opts) {
			if !yield(rec) {
				return
			}
		}
	}
}

// logResync forwards a block decoder's local recovery event to the
// package logger at Debug level (spec §7: these are diagnostics, never
// errors).
func logResync(offset int, reason block.ResyncReason) {
	var reasonStr string
	switch reason {
	case block.ResyncUnknownType:
		reasonStr = "unknown_type"
	case block.ResyncUnpackFailure:
		reasonStr = "unpack_failure"
	default:
		reasonStr = "unknown"
	}
	logx.Get().Debug("dataflash: resync", "offset", offset, "reason", reasonStr)
}
