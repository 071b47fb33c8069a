package mapped

import "fmt"

// ErrorKind classifies mapped-trie errors into categories.
type ErrorKind uint8

const (
	// TooSmall indicates the file is shorter than the magic tag.
	TooSmall ErrorKind = iota

	// BadMagic indicates the file does not open with the trie magic.
	BadMagic

	// Truncated indicates an array header whose extent runs past the end of
	// the file, trailing bytes after the last array, or parallel arrays whose
	// element counts disagree.
	Truncated

	// OutOfBounds indicates an element access outside a mapped array. It is
	// only reachable with a corrupt file: a well-formed dump never contains
	// an index past its own arrays.
	OutOfBounds
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case TooSmall:
		return "TooSmall"
	case BadMagic:
		return "BadMagic"
	case Truncated:
		return "Truncated"
	case OutOfBounds:
		return "OutOfBounds"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents a failure to open or read a mapped trie file.
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Is implements error comparison for errors.Is: two mapped errors match when
// their kinds match, so callers can test against the sentinel values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for errors.Is tests.
var (
	// ErrTooSmall indicates a file too short to hold the magic tag.
	ErrTooSmall = &Error{Kind: TooSmall, Message: "file too small for trie magic"}

	// ErrBadMagic indicates a magic tag mismatch.
	ErrBadMagic = &Error{Kind: BadMagic, Message: "trie magic mismatch"}

	// ErrTruncated indicates array extents inconsistent with the file length.
	ErrTruncated = &Error{Kind: Truncated, Message: "trie file truncated"}

	// ErrOutOfBounds indicates an element access outside a mapped array.
	ErrOutOfBounds = &Error{Kind: OutOfBounds, Message: "index out of mapped array bounds"}
)
