// Package frozen implements the immutable, read-optimized form of the
// matching automaton.
//
// Freezing flattens the build trie (package trie) into four parallel global
// arrays: per-node records, a concatenation of every node's sorted edge
// bytes, the matching child indices, and a sparse payload table. Transitions
// are lower-bound binary searches over a node's slice of the global edge
// array, which keeps the whole automaton in a handful of contiguous
// allocations and makes scanning cache-friendly.
//
// A frozen trie never changes after construction and is safe for concurrent
// readers without locking.
package frozen

import (
	"math"

	"github.com/coregx/noaho/internal/conv"
	"github.com/coregx/noaho/trie"
)

// NoPayload is the sentinel payload meaning "no payload / not found".
const NoPayload = trie.NoPayload

// Node is the per-node record of the frozen automaton. The field widths are
// part of the serialized format and must not change.
type Node struct {
	// CharsOffset is the start of this node's edge-byte range in the global
	// chars array; the same range of the indices array holds the child node
	// for each edge byte.
	CharsOffset int32

	// IFailureState is the node's failure target; 0 (the root) for the root
	// itself and for every node whose path has no matching proper suffix.
	IFailureState int32

	// CharsCount is the number of outgoing edges.
	CharsCount int16

	// Length is the byte length of the key ending at this node, or 0 if the
	// node is not a terminal.
	Length uint16
}

// Trie is the compiled automaton.
//
// Denormalizing payloads out of Node into a sparse sorted table is a win
// because non-terminal nodes commonly outnumber terminals by an order of
// magnitude, and a payload entry costs only twice a payload field.
type Trie struct {
	nodes []Node

	chars   []byte
	indices []int32

	// sparse payload table, sorted strictly ascending by node index; kept as
	// two parallel slices because that is exactly the shape the serializer
	// writes
	payloadKeys   []int32
	payloadValues []int32
}

// Freeze flattens the build trie into its frozen form. The build trie's
// failure links must already be in place (trie.Trie.BuildFailureLinks).
//
// Nodes are emitted in the build trie's allocation order, so node indices
// are identical in both representations and the payload table comes out
// sorted without an explicit sort. Returns ErrTooManyChildren if any node
// has more than 32767 outgoing edges.
func Freeze(src *trie.Trie) (*Trie, error) {
	numNodes := src.NumNodes()
	totalChildren := src.NumTotalChildren()

	numPayloads := 0
	for i := 0; i < numNodes; i++ {
		if src.Payload(int32(i)) != NoPayload {
			numPayloads++
		}
	}

	t := &Trie{
		nodes:         make([]Node, 0, numNodes),
		chars:         make([]byte, 0, totalChildren),
		indices:       make([]int32, 0, totalChildren),
		payloadKeys:   make([]int32, 0, numPayloads),
		payloadValues: make([]int32, 0, numPayloads),
	}

	for i := 0; i < numNodes; i++ {
		edges := src.Edges(int32(i))
		if len(edges) > math.MaxInt16 {
			return nil, ErrTooManyChildren
		}
		t.nodes = append(t.nodes, Node{
			CharsOffset:   conv.IntToInt32(len(t.chars)),
			IFailureState: src.FailureState(int32(i)),
			CharsCount:    int16(len(edges)),
			Length:        src.Length(int32(i)),
		})

		if p := src.Payload(int32(i)); p != NoPayload {
			t.payloadKeys = append(t.payloadKeys, int32(i))
			t.payloadValues = append(t.payloadValues, p)
		}

		for _, e := range edges {
			t.chars = append(t.chars, e.C)
			t.indices = append(t.indices, e.State)
		}
	}

	return t, nil
}

// childAt returns the node reached from state via byte c, or -1 if state
// has no c-edge. This is the raw transition: no root special case. Exact
// queries (Contains, Payload) use it directly.
func (t *Trie) childAt(state int32, c byte) int32 {
	n := &t.nodes[state]
	lo := n.CharsOffset
	hi := lo + int32(n.CharsCount)
	for lo < hi {
		mid := int32(uint32(lo+hi) >> 1)
		if t.chars[mid] < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == n.CharsOffset+int32(n.CharsCount) || t.chars[lo] != c {
		return -1
	}
	return t.indices[lo]
}

// step is the scanner-facing transition: childAt with the root special case
// applied. Every byte that is not an actual child of the root leads back to
// the root, which is also what guarantees termination of the failure-link
// chase in the scanners.
func (t *Trie) step(state int32, c byte) int32 {
	child := t.childAt(state, c)
	if child < 0 && state == 0 {
		return 0
	}
	return child
}

// payloadAt returns the payload attached to state, or NoPayload. The root
// and negative states never carry a visible payload.
func (t *Trie) payloadAt(state int32) int32 {
	if state <= 0 {
		return NoPayload
	}
	lo, hi := 0, len(t.payloadKeys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if t.payloadKeys[mid] < state {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(t.payloadKeys) || t.payloadKeys[lo] != state {
		return NoPayload
	}
	return t.payloadValues[lo]
}

// Contains reports whether key was registered, following exact edges only
// (no failure links, no root loop).
func (t *Trie) Contains(key []byte) bool {
	state := int32(0)
	for _, c := range key {
		state = t.childAt(state, c)
		if state < 0 {
			return false
		}
	}
	return t.nodes[state].Length != 0
}

// Payload returns the payload registered for key, or NoPayload if key was
// never registered (or was registered with NoPayload). Exact match only.
func (t *Trie) Payload(key []byte) int32 {
	state := int32(0)
	for _, c := range key {
		state = t.childAt(state, c)
		if state < 0 {
			return NoPayload
		}
	}
	if t.nodes[state].Length == 0 {
		return NoPayload
	}
	return t.payloadAt(state)
}

// NumKeys returns the number of registered keys.
func (t *Trie) NumKeys() int {
	num := 0
	for i := range t.nodes {
		if t.nodes[i].Length != 0 {
			num++
		}
	}
	return num
}

// NumNodes returns the number of nodes, including the root.
func (t *Trie) NumNodes() int {
	return len(t.nodes)
}

// NumTotalChildren returns the total edge count over all nodes.
func (t *Trie) NumTotalChildren() int {
	return len(t.chars)
}
