//go:build unix

// Package mmfile provides platform-specific helpers for memory-mapping
// DataFlash log files for read-only, concurrent access by decoder workers.
package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path into memory read-only and returns its contents.
// The returned cleanup function must be called exactly once to release the
// mapping; the file descriptor is closed before Map returns, the mapping
// itself keeps the pages alive.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}

// AdviseSequential hints that the mapping will be scanned forward from the
// current position, letting the kernel read ahead more aggressively. This is
// applied once, at Open, since every decoder worker reads its block strictly
// forward.
func AdviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}

// AdviseWillNeed hints that the given byte range will be read soon. Each
// gather worker calls this on its block just before decoding it, so pages
// are faulted in ahead of the scan rather than on first touch.
func AdviseWillNeed(data []byte, start, end int) {
	if start < 0 || end > len(data) || start >= end {
		return
	}
	_ = unix.Madvise(data[start:end], unix.MADV_WILLNEED)
}
