// Package trie implements the mutable build-phase trie of the matching
// engine.
//
// Keys are inserted one byte edge at a time; each node keeps its outgoing
// edges in a slice sorted by edge byte, so lookups during insertion and
// failure-link construction are lower-bound binary searches. The build trie
// is write-optimized: it exists only to be flattened into the read-optimized
// parallel-array form (package frozen) once all keys are registered.
package trie

import (
	"fmt"
	"io"
	"math"
	"sort"
)

// NoPayload is the sentinel payload meaning "no payload attached". It is
// also what queries return for keys that were registered without a payload.
const NoPayload int32 = -1

// Edge is a single outgoing transition: consuming byte C moves the
// automaton to node State.
type Edge struct {
	C     byte
	State int32
}

// node is a build-phase trie node. Edges are kept strictly sorted by byte
// with no duplicates. failure is assigned by BuildFailureLinks and is zero
// (the root) until then.
type node struct {
	children []Edge
	failure  int32
	payload  int32
}

// childAt returns the node reached from n via byte c, or -1 if n has no
// c-edge. Since node indices start at 0 (the root), "invalid" is negative.
func (n *node) childAt(c byte) int32 {
	i := sort.Search(len(n.children), func(k int) bool {
		return n.children[k].C >= c
	})
	if i == len(n.children) || n.children[i].C != c {
		return -1
	}
	return n.children[i].State
}

// setChild inserts or overwrites the c-edge of n, keeping children sorted.
func (n *node) setChild(c byte, state int32) {
	i := sort.Search(len(n.children), func(k int) bool {
		return n.children[k].C >= c
	})
	if i < len(n.children) && n.children[i].C == c {
		n.children[i].State = state
		return
	}
	n.children = append(n.children, Edge{})
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = Edge{C: c, State: state}
}

// Trie is the mutable pattern dictionary.
//
// Node 0 is the root. Nodes are allocated on demand during Add and never
// deleted; lengths is a parallel side array where a non-zero entry marks a
// terminal node and records the byte length of the key ending there.
type Trie struct {
	nodes   []node
	lengths []uint16
}

// New returns an empty trie containing only the root node.
func New() *Trie {
	t := &Trie{}
	t.addNode()
	return t
}

func (t *Trie) addNode() int32 {
	t.nodes = append(t.nodes, node{payload: NoPayload})
	t.lengths = append(t.lengths, 0)
	return int32(len(t.nodes) - 1)
}

// Add registers key with the given payload, overwriting the payload of a
// previously registered identical key. Pass NoPayload to register a key
// without a label.
//
// An empty key is accepted but marks nothing: the root never becomes a
// terminal, and the payload lands on the root where queries cannot see it.
// Callers should reject empty keys at their own boundary.
func (t *Trie) Add(key []byte, payload int32) error {
	if len(key) > math.MaxUint16 {
		return ErrKeyTooLong
	}

	state := int32(0)
	for _, c := range key {
		child := t.nodes[state].childAt(c)
		if child < 0 {
			child = t.addNode()
			t.nodes[state].setChild(c, child)
		}
		state = child
	}
	t.nodes[state].payload = payload
	t.lengths[state] = uint16(len(key))
	return nil
}

// NumNodes returns the number of nodes, including the root.
func (t *Trie) NumNodes() int {
	return len(t.nodes)
}

// NumKeys returns the number of registered keys.
func (t *Trie) NumKeys() int {
	num := 0
	for _, l := range t.lengths {
		if l != 0 {
			num++
		}
	}
	return num
}

// NumTotalChildren returns the total edge count over all nodes.
func (t *Trie) NumTotalChildren() int {
	num := 0
	for i := range t.nodes {
		num += len(t.nodes[i].children)
	}
	return num
}

// Edges returns the sorted outgoing edges of node i. The returned slice
// aliases the trie's internal storage and must not be modified.
func (t *Trie) Edges(i int32) []Edge {
	return t.nodes[i].children
}

// FailureState returns the failure target of node i. Meaningful only after
// BuildFailureLinks has run.
func (t *Trie) FailureState(i int32) int32 {
	return t.nodes[i].failure
}

// Payload returns the payload stored at node i, or NoPayload.
func (t *Trie) Payload(i int32) int32 {
	return t.nodes[i].payload
}

// Length returns the key length recorded at node i, or 0 if node i is not a
// terminal.
func (t *Trie) Length(i int32) uint16 {
	return t.lengths[i]
}

// Dump writes a breadth-first listing of the trie to w, one line per level
// showing the edge bytes entering each node. Debugging aid; the output
// format is not stable.
func (t *Trie) Dump(w io.Writer) {
	type item struct {
		c     byte
		state int32
	}
	queue := []item{{'@', 0}}
	level := []byte{}
	for len(queue) > 0 {
		next := queue[:0:0]
		level = level[:0]
		for _, it := range queue {
			level = append(level, it.c, ' ')
			for _, e := range t.nodes[it.state].children {
				next = append(next, item{e.C, e.State})
			}
		}
		fmt.Fprintf(w, "%s\n", level)
		queue = next
	}
}
