//go:build unix

package mapped

import (
	"os"

	"golang.org/x/sys/unix"
)

// openMapping maps the file at path read-only. The returned function
// releases the mapping and the underlying descriptor.
func openMapping(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	size := fi.Size()
	if size == 0 {
		// mmap rejects empty files; an empty mapping fails the magic check
		// the same way a short one does.
		return nil, f.Close, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return data, func() error {
		merr := unix.Munmap(data)
		if cerr := f.Close(); merr == nil {
			merr = cerr
		}
		return merr
	}, nil
}
