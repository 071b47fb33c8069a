package noaho

import "sort"

// CodePoints maps byte offsets in a UTF-8 buffer to codepoint ordinals.
//
// The automaton works in bytes; match offsets from the scanners are byte
// offsets. Callers holding UTF-8 text can build a CodePoints over the same
// buffer and convert match bounds into codepoint space:
//
//	cp := noaho.NewCodePoints(text)
//	m, ok, _ := t.FindShort(text, 0)
//	if ok {
//	    runeStart, runeEnd := cp.Index(m.Start), cp.Index(m.End)
//	    _ = runeStart
//	    _ = runeEnd
//	}
type CodePoints struct {
	starts []int32
}

// NewCodePoints records the codepoint start offsets of b: every byte whose
// top two bits are not 10, which covers ASCII and UTF-8 sequence leaders.
// Malformed UTF-8 is not detected; stray lead bytes count as starts.
func NewCodePoints(b []byte) *CodePoints {
	cp := &CodePoints{starts: make([]int32, 0, len(b))}
	for i := range b {
		if b[i]&0xC0 != 0x80 {
			cp.starts = append(cp.starts, int32(i))
		}
	}
	return cp
}

// Index returns the number of codepoint starts strictly before byteOffset,
// via lower bound over the recorded starts. For a byteOffset on a codepoint
// boundary this is that codepoint's ordinal; one past the buffer it is the
// codepoint count.
func (cp *CodePoints) Index(byteOffset int) int {
	return sort.Search(len(cp.starts), func(i int) bool {
		return cp.starts[i] >= int32(byteOffset)
	})
}
