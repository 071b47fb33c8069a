package frozen

// Source is the capability surface the anchored scanner needs from an
// automaton: node metadata, the raw child transition, and payload lookup.
//
// Both the in-memory Trie and the memory-mapped reader implement it. The
// methods return errors because the mapped implementation reads untrusted
// bytes and must be able to report a corrupt file; the in-memory
// implementation only errors on node indices outside the automaton, which
// the scanner never generates.
//
// FindShort and FindLongest are deliberately not written against Source:
// they are the hot paths and stay bound to the concrete in-memory type.
type Source interface {
	// NodeAt returns the metadata record of node i.
	NodeAt(i int32) (Node, error)

	// ChildAt returns the node reached from i via byte c, or -1 if i has no
	// c-edge. No root special case.
	ChildAt(i int32, c byte) (int32, error)

	// PayloadAt returns the payload attached to node i, or NoPayload.
	PayloadAt(i int32) (int32, error)
}

// FindAnchored scans text[start:] for the longest key beginning at an
// anchor byte. Failure links are ignored: from each anchor position a plain
// trie walk runs until its first missing edge, recording the longest
// terminal touched; if the walk recorded nothing, the scan resumes at the
// next anchor.
//
// The semantics assume the anchor delimits keys in both the dictionary and
// the text (keys start and end with it); nothing is enforced.
func FindAnchored(src Source, text []byte, anchor byte, start int) (Match, bool, error) {
	for start < len(text) {
		for start < len(text) && text[start] != anchor {
			start++
		}
		if start >= len(text) {
			break
		}

		lengthLongest := 0
		endLongest := -1
		nodeLongest := int32(-1)

		state := int32(0)
		for i := start; i < len(text); i++ {
			child, err := src.ChildAt(state, text[i])
			if err != nil {
				return Match{Payload: NoPayload}, false, err
			}
			if child < 0 {
				break
			}
			state = child

			n, err := src.NodeAt(state)
			if err != nil {
				return Match{Payload: NoPayload}, false, err
			}
			if l := int(n.Length); l > lengthLongest {
				lengthLongest = l
				endLongest = i + 1
				nodeLongest = state
			}
		}

		if lengthLongest > 0 {
			payload, err := src.PayloadAt(nodeLongest)
			if err != nil {
				return Match{Payload: NoPayload}, false, err
			}
			return Match{
				Payload: payload,
				Start:   endLongest - lengthLongest,
				End:     endLongest,
			}, true, nil
		}

		start++
	}
	return Match{Payload: NoPayload}, false, nil
}

// FindAnchored runs the anchored scanner against the in-memory automaton.
// See the package-level FindAnchored for semantics. The error return exists
// for interface symmetry with the mapped reader and is always nil here.
func (t *Trie) FindAnchored(text []byte, anchor byte, start int) (Match, bool, error) {
	return FindAnchored(t, text, anchor, start)
}

// NodeAt implements Source.
func (t *Trie) NodeAt(i int32) (Node, error) {
	if i < 0 || int(i) >= len(t.nodes) {
		return Node{}, ErrInvalidState
	}
	return t.nodes[i], nil
}

// ChildAt implements Source.
func (t *Trie) ChildAt(i int32, c byte) (int32, error) {
	if i < 0 || int(i) >= len(t.nodes) {
		return -1, ErrInvalidState
	}
	return t.childAt(i, c), nil
}

// PayloadAt implements Source.
func (t *Trie) PayloadAt(i int32) (int32, error) {
	if int(i) >= len(t.nodes) {
		return NoPayload, ErrInvalidState
	}
	return t.payloadAt(i), nil
}
