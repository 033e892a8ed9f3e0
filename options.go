package dataflash

import (
	"log/slog"
	"runtime"

	"github.com/joshuapare/dataflash/internal/block"
	"github.com/joshuapare/dataflash/internal/gather"
)

// Options controls how a Log is opened and how its blocks are planned and
// decoded. The zero value is a sensible default.
type Options struct {
	// BlockSize is the target byte size of each decode block (spec §4.3:
	// 10-15 MiB rationale). Blocks are never smaller than the distance to
	// the next sync marker past this target. Zero selects the default.
	BlockSize int

	// Workers bounds the decoder worker pool. Zero selects
	// min(runtime.NumCPU(), 6) (spec §5).
	Workers int

	// Logger receives Debug-level resync diagnostics (unknown type code,
	// unpack failure, malformed FMT candidate). These are never errors —
	// spec §7 requires that parsing failures never propagate to the
	// consumer — but they're useful when diagnosing a noisy file. Nil
	// discards all log output.
	Logger *slog.Logger
}

func (o Options) blockSize() int {
	if o.BlockSize > 0 {
		return o.BlockSize
	}
	return block.DefaultSize
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return gather.DefaultWorkers(runtime.NumCPU())
}
