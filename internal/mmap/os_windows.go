//go:build windows

package mmap

import (
	"io"
	"os"
)

// Snapshots are small and read once, so Windows reads the file into memory
// instead of mapping it.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
