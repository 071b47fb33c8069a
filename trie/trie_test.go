package trie

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestTrie_Add_Structure checks node allocation and sorted edge lists for a
// small dictionary.
func TestTrie_Add_Structure(t *testing.T) {
	tr := New()
	for _, key := range []string{"he", "she", "his", "hers"} {
		if err := tr.Add([]byte(key), NoPayload); err != nil {
			t.Fatalf("Add(%q): %v", key, err)
		}
	}

	if got, want := tr.NumNodes(), 10; got != want {
		t.Errorf("NumNodes() = %d, want %d", got, want)
	}
	if got, want := tr.NumKeys(), 4; got != want {
		t.Errorf("NumKeys() = %d, want %d", got, want)
	}
	if got, want := tr.NumTotalChildren(), 9; got != want {
		t.Errorf("NumTotalChildren() = %d, want %d", got, want)
	}

	// root edges must be sorted by byte: 'h' < 's'
	root := tr.Edges(0)
	if len(root) != 2 || root[0].C != 'h' || root[1].C != 's' {
		t.Errorf("root edges = %v, want sorted [h s]", root)
	}

	// shared prefixes share nodes: "he" and "hers" diverge after node "he"
	h := root[0].State
	he := tr.Edges(h)[0].State
	if got, want := tr.Length(he), uint16(2); got != want {
		t.Errorf("Length(he) = %d, want %d", got, want)
	}
}

func TestTrie_Add_SortedInsertion(t *testing.T) {
	tr := New()
	// insert out of byte order; edges must come out ascending
	for _, c := range []byte{'z', 'm', 'a', 'q'} {
		if err := tr.Add([]byte{c}, int32(c)); err != nil {
			t.Fatalf("Add(%c): %v", c, err)
		}
	}
	edges := tr.Edges(0)
	for i := 1; i < len(edges); i++ {
		if edges[i-1].C >= edges[i].C {
			t.Fatalf("root edges not strictly sorted: %v", edges)
		}
	}
}

func TestTrie_Add_PayloadOverwrite(t *testing.T) {
	tr := New()
	if err := tr.Add([]byte("key"), 1); err != nil {
		t.Fatal(err)
	}
	if err := tr.Add([]byte("key"), 2); err != nil {
		t.Fatal(err)
	}

	// walk to the terminal node
	state := int32(0)
	for range []byte("key") {
		state = tr.Edges(state)[0].State
	}
	if got, want := tr.Payload(state), int32(2); got != want {
		t.Errorf("payload after overwrite = %d, want %d", got, want)
	}
	if got, want := tr.NumKeys(), 1; got != want {
		t.Errorf("NumKeys() = %d, want %d", got, want)
	}
}

func TestTrie_Add_KeyTooLong(t *testing.T) {
	tr := New()
	long := bytes.Repeat([]byte{'a'}, 65536)
	if err := tr.Add(long, 1); !errors.Is(err, ErrKeyTooLong) {
		t.Fatalf("Add(65536 bytes) = %v, want ErrKeyTooLong", err)
	}
	if err := tr.Add(long[:65535], 1); err != nil {
		t.Fatalf("Add(65535 bytes) = %v, want nil", err)
	}
}

func TestTrie_Add_EmptyKey(t *testing.T) {
	tr := New()
	if err := tr.Add(nil, 7); err != nil {
		t.Fatalf("Add(empty) = %v", err)
	}
	// the root never becomes a terminal
	if got := tr.NumKeys(); got != 0 {
		t.Errorf("NumKeys() after empty key = %d, want 0", got)
	}
	if got := tr.Length(0); got != 0 {
		t.Errorf("Length(root) = %d, want 0", got)
	}
}

func TestTrie_Dump(t *testing.T) {
	tr := New()
	tr.Add([]byte("ab"), 1)
	tr.Add([]byte("ac"), 2)

	var buf bytes.Buffer
	tr.Dump(&buf)
	out := buf.String()
	if !strings.Contains(out, "a") || !strings.Contains(out, "b c") {
		t.Errorf("Dump output missing levels:\n%s", out)
	}
}
