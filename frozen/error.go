package frozen

import "errors"

// Freeze-time errors
var (
	// ErrTooManyChildren indicates a node whose outgoing edge count does not
	// fit the 16-bit signed field of the frozen node record.
	ErrTooManyChildren = errors.New("node children count overflow")

	// ErrInvalidState indicates a node index outside the automaton. It is
	// only reachable through the Source interface; the concrete scanners
	// never produce one.
	ErrInvalidState = errors.New("invalid node index")
)
