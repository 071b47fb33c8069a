package frozen

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Magic is the 16-bit tag opening a serialized trie, always written
// little-endian.
const Magic uint16 = 0xBABB

// The serialized layout is a plain concatenation with no padding: the magic,
// then the four node-attribute arrays (chars offset, failure state, chars
// count, length), the edge-byte array, the child-index array, and the two
// payload arrays. Every array is prefixed with its element count as a
// uint64. Apart from the magic, integers are written in the host's byte
// order: the dump is bit-exact with the in-memory form and is only readable
// on a matching architecture.

// WriteTo serializes the trie to w and implements io.WriterTo.
func (t *Trie) WriteTo(w io.Writer) (int64, error) {
	charsOffset := make([]int32, len(t.nodes))
	failureState := make([]int32, len(t.nodes))
	charsCount := make([]int16, len(t.nodes))
	length := make([]uint16, len(t.nodes))
	for i := range t.nodes {
		charsOffset[i] = t.nodes[i].CharsOffset
		failureState[i] = t.nodes[i].IFailureState
		charsCount[i] = t.nodes[i].CharsCount
		length[i] = t.nodes[i].Length
	}

	cw := &countingWriter{w: w}
	cw.write(binary.LittleEndian, Magic)
	cw.writeArray(len(charsOffset), charsOffset)
	cw.writeArray(len(failureState), failureState)
	cw.writeArray(len(charsCount), charsCount)
	cw.writeArray(len(length), length)
	cw.writeArray(len(t.chars), t.chars)
	cw.writeArray(len(t.indices), t.indices)
	cw.writeArray(len(t.payloadKeys), t.payloadKeys)
	cw.writeArray(len(t.payloadValues), t.payloadValues)
	return cw.n, cw.err
}

// Write serializes the trie to a new file at path, replacing any existing
// file.
func (t *Trie) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating trie file %s", path)
	}

	bw := bufio.NewWriter(f)
	if _, err := t.WriteTo(bw); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing trie file %s", path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing trie file %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing trie file %s", path)
	}
	return nil
}

// countingWriter tracks bytes written and holds the first error so the
// serialization body reads as a straight sequence of writes.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

// Write counts every byte the underlying writer accepts, including those of
// a write that fails part way.
func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func (cw *countingWriter) write(order binary.ByteOrder, v any) {
	if cw.err != nil {
		return
	}
	cw.err = binary.Write(cw, order, v)
}

func (cw *countingWriter) writeArray(count int, data any) {
	cw.write(binary.NativeEndian, uint64(count))
	cw.write(binary.NativeEndian, data)
}
