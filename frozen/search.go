package frozen

// Match is one scanner result: the key occupying text[Start:End) and its
// payload.
//
// The scanners take the caller's cursor as a plain start offset and report
// the matched range; resuming a scan is setting start to the previous
// match's End. On a miss the scanners return ok == false and a Match whose
// Payload is NoPayload.
type Match struct {
	Payload int32
	Start   int
	End     int
}

// FindShort scans text[start:] and returns the first match by end position,
// which is the shortest key terminating there: the walk stops on the first
// terminal node it touches.
//
// The scan is a single left-to-right pass; on a missing edge the failure
// links are followed (amortized O(1) per input byte) and the walk continues
// at the fallback state.
func (t *Trie) FindShort(text []byte, start int) (Match, bool) {
	state := int32(0)
	for i := start; i < len(text); i++ {
		c := text[i]
		child := t.step(state, c)
		for child < 0 {
			state = t.nodes[state].IFailureState
			child = t.step(state, c)
		}
		state = child

		if l := int(t.nodes[state].Length); l != 0 && l <= i+1-start {
			end := i + 1
			return Match{
				Payload: t.payloadAt(state),
				Start:   end - l,
				End:     end,
			}, true
		}
	}
	return Match{Payload: NoPayload}, false
}

// FindLongest scans text[start:] and returns the longest key found in a
// single forward walk, bounded by the first failure-link fallback after any
// match has been seen: the scanner will not follow a failure link past the
// end of a currently-matched prefix, so the returned range stays anchored
// near start.
//
// A consequence of looking through every contiguous terminal before
// returning: when many keys end back to back, repeatedly resuming this
// scanner is quadratic in the length of that contiguous run.
//
// A shorter key that is a proper suffix of a longer one can shadow it when
// their occurrences overlap; the walk commits to the first fallback rather
// than rewinding. Callers relying on strict longest-overall semantics must
// rescan themselves.
func (t *Trie) FindLongest(text []byte, start int) (Match, bool) {
	lengthLongest := -1
	endLongest := -1
	nodeLongest := int32(-1)
	haveMatch := false

	state := int32(0)
	for i := start; i < len(text); i++ {
		c := text[i]
		child := t.step(state, c)
		for child < 0 {
			if haveMatch {
				return Match{
					Payload: t.payloadAt(nodeLongest),
					Start:   endLongest - lengthLongest,
					End:     endLongest,
				}, true
			}
			state = t.nodes[state].IFailureState
			child = t.step(state, c)
		}
		state = child

		keylen := int(t.nodes[state].Length)
		// The window bound mirrors FindShort; it can only bite when a key is
		// longer than the scanned region.
		if keylen != 0 && keylen <= i+1-start && lengthLongest < keylen {
			haveMatch = true
			lengthLongest = keylen
			endLongest = i + 1
			nodeLongest = state
		}
	}
	if haveMatch {
		return Match{
			Payload: t.payloadAt(nodeLongest),
			Start:   endLongest - lengthLongest,
			End:     endLongest,
		}, true
	}
	return Match{Payload: NoPayload}, false
}
