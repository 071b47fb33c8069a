//go:build !unix

package mapped

import "os"

// openMapping reads the whole file into memory on platforms without a mmap
// implementation. Behavior is otherwise identical to the mapped form.
func openMapping(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
