//go:build unix

// Package mmapfile maps files read only into memory, with a plain read fallback on platforms
// without mmap support.
package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map - Maps the file at path read only into memory.
//
// It returns:
//   - data holds the file contents and must not be written to
//   - release unmaps data, which must not be touched afterwards
//   - err is a standard error if the file could not be opened or mapped
func Map(path string) (data []byte, release func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("error while opening file to map: %w", err)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		err = fmt.Errorf("error while sizing file to map: %w", err)
		return
	}

	// Zero length files can not be mapped
	if info.Size() == 0 {
		data = []byte{}
		release = func() error { return nil }
		return
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		err = fmt.Errorf("error while mapping file: %w", err)
		return
	}

	mapped := data
	release = func() error { return unix.Munmap(mapped) }

	return
}
