package trie

// BuildFailureLinks assigns every node its Aho-Corasick failure target: the
// node reached from the root by the longest proper suffix of the node's own
// path that is also a path from the root.
//
// Classical breadth-first construction. The root and its children fail to
// the root; for every deeper node s reached from r via byte a, the
// failure chain of r is followed until a state with an a-edge is found, and
// s fails to that state's a-child. Termination of the inner chase relies on
// the root's self-loop transition: stepFromRoot never reports a missing edge
// at the root, it reports the root itself.
//
// Safe to call more than once; links are recomputed from scratch.
func (t *Trie) BuildFailureLinks() {
	queue := make([]int32, 0, len(t.nodes))

	// root fails to root
	t.nodes[0].failure = 0
	for _, e := range t.nodes[0].children {
		t.nodes[e.State].failure = 0
		queue = append(queue, e.State)
	}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, e := range t.nodes[r].children {
			s := e.State
			queue = append(queue, s)

			fail := t.nodes[r].failure
			child := t.stepFromRoot(fail, e.C)
			for child < 0 {
				fail = t.nodes[fail].failure
				child = t.stepFromRoot(fail, e.C)
			}
			t.nodes[s].failure = child
		}
	}
}

// stepFromRoot is childAt with the root special case applied: every byte
// that is not an actual child of the root leads back to the root.
func (t *Trie) stepFromRoot(state int32, c byte) int32 {
	child := t.nodes[state].childAt(c)
	if child < 0 && state == 0 {
		return 0
	}
	return child
}
