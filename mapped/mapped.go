// Package mapped reads a serialized trie through a memory mapping and runs
// the anchored scanner directly over the mapped bytes.
//
// Opening validates the magic and the array headers but copies nothing: the
// eight arrays of the on-disk layout are recorded as offsets into the
// mapping, and node records are gathered on the fly from the four parallel
// attribute arrays. Every element access is bounds-checked.
//
// The dump is written in the host's byte order (package frozen), so a file
// is only readable on an architecture matching its writer.
package mapped

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/coregx/noaho/frozen"
)

// Trie is a read-only trie backed by a memory-mapped file. It implements
// frozen.Source and answers FindAnchored with the same results as the
// in-memory trie the file was written from.
//
// A Trie owns its file descriptor and mapping; Close releases both. It is
// safe for concurrent readers, not for concurrent use with Close.
type Trie struct {
	path  string
	data  []byte
	unmap func() error

	charsOffset   int32Array
	failureState  int32Array
	charsCount    int16Array
	length        uint16Array
	chars         byteArray
	indices       int32Array
	payloadKeys   int32Array
	payloadValues int32Array
}

// Open maps the trie file at path read-only and validates its layout.
func Open(path string) (*Trie, error) {
	data, unmap, err := openMapping(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening trie file %s", path)
	}
	t := &Trie{path: path, data: data, unmap: unmap}
	if err := t.parse(); err != nil {
		unmap()
		return nil, err
	}
	return t, nil
}

// Close unmaps the file and closes its descriptor. The Trie must not be
// used afterwards.
func (t *Trie) Close() error {
	if t.unmap == nil {
		return nil
	}
	err := t.unmap()
	t.unmap = nil
	t.data = nil
	return err
}

func (t *Trie) parse() error {
	if len(t.data) < 2 {
		return &Error{Kind: TooSmall, Path: t.path, Message: "file too small for trie magic"}
	}
	if binary.LittleEndian.Uint16(t.data) != frozen.Magic {
		return &Error{Kind: BadMagic, Path: t.path, Message: "trie magic mismatch"}
	}

	r := sectionReader{data: t.data, off: 2, path: t.path}
	var err error
	if t.charsOffset.data, t.charsOffset.n, err = r.next(4); err != nil {
		return err
	}
	if t.failureState.data, t.failureState.n, err = r.next(4); err != nil {
		return err
	}
	if t.charsCount.data, t.charsCount.n, err = r.next(2); err != nil {
		return err
	}
	if t.length.data, t.length.n, err = r.next(2); err != nil {
		return err
	}
	if t.chars.data, t.chars.n, err = r.next(1); err != nil {
		return err
	}
	if t.indices.data, t.indices.n, err = r.next(4); err != nil {
		return err
	}
	if t.payloadKeys.data, t.payloadKeys.n, err = r.next(4); err != nil {
		return err
	}
	if t.payloadValues.data, t.payloadValues.n, err = r.next(4); err != nil {
		return err
	}

	if r.off != len(t.data) {
		return &Error{Kind: Truncated, Path: t.path, Message: "trailing bytes after trie arrays"}
	}
	if t.failureState.n != t.charsOffset.n || t.charsCount.n != t.charsOffset.n ||
		t.length.n != t.charsOffset.n {
		return &Error{Kind: Truncated, Path: t.path, Message: "node attribute arrays disagree on node count"}
	}
	if t.indices.n != t.chars.n {
		return &Error{Kind: Truncated, Path: t.path, Message: "edge arrays disagree on edge count"}
	}
	if t.payloadValues.n != t.payloadKeys.n {
		return &Error{Kind: Truncated, Path: t.path, Message: "payload arrays disagree on entry count"}
	}
	return nil
}

// sectionReader walks the count-prefixed arrays of the on-disk layout.
type sectionReader struct {
	data []byte
	off  int
	path string
}

// next consumes one uint64 count followed by count elements of elemSize
// bytes and returns the element bytes and count.
func (r *sectionReader) next(elemSize int) ([]byte, int, error) {
	if r.off+8 > len(r.data) {
		return nil, 0, &Error{Kind: Truncated, Path: r.path, Message: "file ends inside an array header"}
	}
	count := binary.NativeEndian.Uint64(r.data[r.off:])
	r.off += 8

	size := count * uint64(elemSize)
	if count > uint64(len(r.data)) || r.off+int(size) > len(r.data) {
		return nil, 0, &Error{Kind: Truncated, Path: r.path, Message: "array extent runs past end of file"}
	}
	data := r.data[r.off : r.off+int(size)]
	r.off += int(size)
	return data, int(count), nil
}

// NumNodes returns the number of nodes, including the root.
func (t *Trie) NumNodes() int {
	return t.charsOffset.n
}

// FindAnchored scans text[start:] for the longest key beginning at an
// anchor byte; see frozen.FindAnchored for the scanner semantics. A non-nil
// error means the file is corrupt.
func (t *Trie) FindAnchored(text []byte, anchor byte, start int) (frozen.Match, bool, error) {
	return frozen.FindAnchored(t, text, anchor, start)
}

// NodeAt implements frozen.Source, gathering the node record from the four
// parallel attribute arrays.
func (t *Trie) NodeAt(i int32) (frozen.Node, error) {
	co, err := t.charsOffset.at(i)
	if err != nil {
		return frozen.Node{}, err
	}
	fs, err := t.failureState.at(i)
	if err != nil {
		return frozen.Node{}, err
	}
	cc, err := t.charsCount.at(i)
	if err != nil {
		return frozen.Node{}, err
	}
	l, err := t.length.at(i)
	if err != nil {
		return frozen.Node{}, err
	}
	return frozen.Node{
		CharsOffset:   co,
		IFailureState: fs,
		CharsCount:    cc,
		Length:        l,
	}, nil
}

// ChildAt implements frozen.Source: a lower-bound binary search over node
// i's slice of the edge-byte array. Returns -1 when i has no c-edge.
func (t *Trie) ChildAt(i int32, c byte) (int32, error) {
	n, err := t.NodeAt(i)
	if err != nil {
		return -1, err
	}

	lo := n.CharsOffset
	hi := lo + int32(n.CharsCount)
	for lo < hi {
		mid := int32(uint32(lo+hi) >> 1)
		cm, err := t.chars.at(mid)
		if err != nil {
			return -1, err
		}
		if cm < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == n.CharsOffset+int32(n.CharsCount) {
		return -1, nil
	}
	cm, err := t.chars.at(lo)
	if err != nil {
		return -1, err
	}
	if cm != c {
		return -1, nil
	}
	return t.indices.at(lo)
}

// PayloadAt implements frozen.Source: a binary search over the sparse
// payload table. Returns frozen.NoPayload for nodes without a payload.
func (t *Trie) PayloadAt(i int32) (int32, error) {
	if i <= 0 {
		return frozen.NoPayload, nil
	}
	lo, hi := int32(0), int32(t.payloadKeys.n)
	for lo < hi {
		mid := int32(uint32(lo+hi) >> 1)
		k, err := t.payloadKeys.at(mid)
		if err != nil {
			return frozen.NoPayload, err
		}
		if k < i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == int32(t.payloadKeys.n) {
		return frozen.NoPayload, nil
	}
	k, err := t.payloadKeys.at(lo)
	if err != nil {
		return frozen.NoPayload, err
	}
	if k != i {
		return frozen.NoPayload, nil
	}
	return t.payloadValues.at(lo)
}
