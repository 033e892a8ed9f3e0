//go:build windows

package mmfile

import (
	"os"
)

// Map reads the entire file into memory. Windows file mapping is not wired
// up here; a plain read gives the same read-only byte slice contract the
// rest of the decoder depends on, at the cost of paging it all in upfront.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// AdviseSequential is a no-op on this platform.
func AdviseSequential(data []byte) {}

// AdviseWillNeed is a no-op on this platform.
func AdviseWillNeed(data []byte, start, end int) {}
