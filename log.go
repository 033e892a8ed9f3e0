package dataflash

import (
	"fmt"
	"sync"

	"github.com/joshuapare/dataflash/internal/logx"
	"github.com/joshuapare/dataflash/internal/mmfile"
	"github.com/joshuapare/dataflash/internal/registry"
)

// Log is an opened DataFlash log, backed by a read-only memory mapping.
// The Format Registry is built once at Open and is immutable thereafter
// (spec §3 Lifecycle).
type Log struct {
	path    string
	data    []byte
	cleanup func() error
	snap    registry.Snapshot
	opts    Options

	mu     sync.Mutex
	closed bool
}

// Open maps path into memory and runs the FMT prepass (spec §4.2) before
// returning. Open failure (the path cannot be opened or mapped) is the
// only fatal error surface in this package (spec §7); everything past
// this point is best-effort.
func Open(path string, opts Options) (*Log, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("dataflash: open %s: %w", path, err)
	}
	mmfile.AdviseSequential(data)

	if opts.Logger != nil {
		logx.SetLogger(opts.Logger)
	}

	snap := registry.Prepass(data)

	return &Log{
		path:    path,
		data:    data,
		cleanup: cleanup,
		snap:    snap,
		opts:    opts,
	}, nil
}

// Close releases the memory mapping (the file handle itself is already
// closed once Open has mapped the file). It is not safe to
// call Close while a range loop over Iterate or All from this Log is
// still running (spec §5 Resource acquisition: "acquired at session start
// and released on all exit paths").
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.cleanup()
}

// Registry exposes the immutable Format Registry snapshot built during
// Open, for callers that want to inspect known record layouts (e.g. to
// list record names) without iterating the file.
func (l *Log) Registry() registry.Snapshot { return l.snap }

// Path returns the file path this Log was opened from.
func (l *Log) Path() string { return l.path }

// Size returns the mapped file size in bytes.
func (l *Log) Size() int { return len(l.data) }
