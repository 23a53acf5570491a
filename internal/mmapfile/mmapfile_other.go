//go:build !unix

// Package mmapfile maps files read only into memory, with a plain read fallback on platforms
// without mmap support.
package mmapfile

import (
	"fmt"
	"os"
)

// Map - Reads the whole file at path into memory. The release function only drops the reference.
//
// It returns:
//   - data holds the file contents and must not be written to
//   - release drops the data, which must not be touched afterwards
//   - err is a standard error if the file could not be read
func Map(path string) (data []byte, release func() error, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("error while reading file: %w", err)
		return
	}

	release = func() error { return nil }

	return
}
