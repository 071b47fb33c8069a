package trie

import "errors"

// Build-phase errors
var (
	// ErrKeyTooLong indicates a key longer than 65535 bytes. Key lengths are
	// stored in 16 bits in the compiled form, so longer keys cannot be
	// represented.
	ErrKeyTooLong = errors.New("key exceeds maximum length of 65535 bytes")
)
