package frozen

import (
	"fmt"
	"io"
)

// Dump writes a breadth-first listing of the automaton to w, one line per
// level showing the edge bytes entering each node. Debugging aid; the
// output format is not stable.
func (t *Trie) Dump(w io.Writer) {
	type item struct {
		c     byte
		state int32
	}
	queue := []item{{'@', 0}}
	line := []byte{}
	for len(queue) > 0 {
		next := queue[:0:0]
		line = line[:0]
		for _, it := range queue {
			line = append(line, it.c, ' ')
			n := t.nodes[it.state]
			for k := n.CharsOffset; k < n.CharsOffset+int32(n.CharsCount); k++ {
				next = append(next, item{t.chars[k], t.indices[k]})
			}
		}
		fmt.Fprintf(w, "%s\n", line)
		queue = next
	}
}
