// Package noaho provides non-overlapping multi-pattern string matching
// built on an Aho-Corasick automaton.
//
// A dictionary of byte keys, each with an optional 32-bit integer payload,
// is registered into a mutable trie and then compiled into a read-optimized
// parallel-array automaton. The compiled form supports three scan modes
// plus exact lookups, serializes to a file, and can be reopened through a
// memory mapping without deserialization (package mapped).
//
// Scan modes:
//   - FindShort: first match by end position (shortest key ending there)
//   - FindLongest: longest key seen in one forward walk, committed at the
//     first failure-link fallback after a match
//   - FindAnchored: longest key beginning at an anchor byte, failure links
//     ignored
//
// Basic usage:
//
//	t := noaho.New()
//	t.Add([]byte("she"), 2)
//	t.Add([]byte("hers"), 4)
//	if err := t.Compile(); err != nil {
//	    log.Fatal(err)
//	}
//
//	m, ok, _ := t.FindShort([]byte("ushers"), 0)
//	// m.Start == 1, m.End == 4, m.Payload == 2
//
// Scanners are resumable: pass the previous match's End as the next start
// offset to continue through the same buffer.
//
// Keys and scanned text are byte sequences; the automaton never interprets
// multibyte encodings. For UTF-8 callers, CodePoints converts match byte
// offsets into codepoint ordinals.
//
// A compiled Trie is immutable and safe for concurrent readers. The build
// phase is not: finish all Add calls before Compile, and do not share an
// uncompiled Trie across goroutines.
package noaho

import (
	"errors"
	"io"

	"github.com/coregx/noaho/frozen"
	"github.com/coregx/noaho/trie"
)

// NoPayload is the sentinel payload meaning "no payload / not found".
const NoPayload = frozen.NoPayload

// Match is one scanner result: the key occupying text[Start:End) and its
// payload.
type Match = frozen.Match

// Lifecycle errors
var (
	// ErrCompiled indicates an Add call after Compile.
	ErrCompiled = errors.New("cannot add key to a compiled trie")

	// ErrNotCompiled indicates a query or Write call before Compile.
	ErrNotCompiled = errors.New("trie must be compiled before use")
)

// Trie is the engine facade, presenting the add, compile, query, write
// lifecycle.
//
// Until Compile, keys may be added and only the informational counters may
// be queried. Compile consumes the build trie and installs the frozen
// automaton; from then on the Trie answers queries and serializes, and Add
// fails with ErrCompiled.
type Trie struct {
	build  *trie.Trie
	frozen *frozen.Trie
}

// New returns an empty trie ready for Add calls.
func New() *Trie {
	return &Trie{build: trie.New()}
}

// Add registers key with the given payload, overwriting the payload of a
// previously registered identical key. Pass NoPayload for keys that need no
// label.
//
// Returns ErrCompiled once the trie has been compiled, or
// trie.ErrKeyTooLong for keys over 65535 bytes. Empty keys are accepted but
// never match; callers should reject them at their own boundary.
func (t *Trie) Add(key []byte, payload int32) error {
	if t.frozen != nil {
		return ErrCompiled
	}
	return t.build.Add(key, payload)
}

// AddString is Add for string keys.
func (t *Trie) AddString(key string, payload int32) error {
	return t.Add([]byte(key), payload)
}

// Compile builds the failure links and freezes the trie into its
// read-optimized form. Idempotent: compiling a compiled trie is a no-op.
//
// On error (a node with more than 32767 children) the build state is left
// as it was and Add remains usable.
func (t *Trie) Compile() error {
	if t.frozen != nil {
		return nil
	}
	t.build.BuildFailureLinks()
	f, err := frozen.Freeze(t.build)
	if err != nil {
		return err
	}
	t.frozen = f
	t.build = nil
	return nil
}

// FindShort scans text[start:] and returns the first match by end position,
// choosing the shortest key among those terminating there.
//
// Example:
//
//	m, ok, err := t.FindShort(text, 0)
//	for err == nil && ok {
//	    // text[m.Start:m.End] matched with payload m.Payload
//	    m, ok, err = t.FindShort(text, m.End)
//	}
func (t *Trie) FindShort(text []byte, start int) (Match, bool, error) {
	if t.frozen == nil {
		return Match{Payload: NoPayload}, false, ErrNotCompiled
	}
	m, ok := t.frozen.FindShort(text, start)
	return m, ok, nil
}

// FindLongest scans text[start:] and returns the longest key found in a
// single forward walk, committed at the first failure-link fallback after
// any match has been seen. See frozen.Trie.FindLongest for the overlap
// caveats this implies.
func (t *Trie) FindLongest(text []byte, start int) (Match, bool, error) {
	if t.frozen == nil {
		return Match{Payload: NoPayload}, false, ErrNotCompiled
	}
	m, ok := t.frozen.FindLongest(text, start)
	return m, ok, nil
}

// FindAnchored scans text[start:] for the longest key beginning at an
// anchor byte (a fixed delimiter such as '.'). Failure links are ignored;
// each anchor position starts a fresh trie walk.
func (t *Trie) FindAnchored(text []byte, anchor byte, start int) (Match, bool, error) {
	if t.frozen == nil {
		return Match{Payload: NoPayload}, false, ErrNotCompiled
	}
	return t.frozen.FindAnchored(text, anchor, start)
}

// Contains reports whether key was registered, by exact match only.
func (t *Trie) Contains(key []byte) (bool, error) {
	if t.frozen == nil {
		return false, ErrNotCompiled
	}
	return t.frozen.Contains(key), nil
}

// Payload returns the payload registered for key, or NoPayload if key was
// never registered (or carries no payload). Exact match only.
func (t *Trie) Payload(key []byte) (int32, error) {
	if t.frozen == nil {
		return NoPayload, ErrNotCompiled
	}
	return t.frozen.Payload(key), nil
}

// NumKeys returns the number of registered keys. Usable in both lifecycle
// phases.
func (t *Trie) NumKeys() int {
	if t.frozen != nil {
		return t.frozen.NumKeys()
	}
	return t.build.NumKeys()
}

// NumNodes returns the number of automaton nodes, including the root.
// Usable in both lifecycle phases.
func (t *Trie) NumNodes() int {
	if t.frozen != nil {
		return t.frozen.NumNodes()
	}
	return t.build.NumNodes()
}

// NumTotalChildren returns the total edge count over all nodes. Usable in
// both lifecycle phases.
func (t *Trie) NumTotalChildren() int {
	if t.frozen != nil {
		return t.frozen.NumTotalChildren()
	}
	return t.build.NumTotalChildren()
}

// Write serializes the compiled trie to a new file at path. The dump is
// bit-exact with the in-memory form (host byte order) and is only readable
// on a matching architecture; open it with mapped.Open.
func (t *Trie) Write(path string) error {
	if t.frozen == nil {
		return ErrNotCompiled
	}
	return t.frozen.Write(path)
}

// Dump writes a breadth-first debug listing of the trie to w. Works in both
// lifecycle phases; the output format is not stable.
func (t *Trie) Dump(w io.Writer) {
	if t.frozen != nil {
		t.frozen.Dump(w)
		return
	}
	t.build.Dump(w)
}
