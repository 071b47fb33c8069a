package mapped

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/noaho/frozen"
	"github.com/coregx/noaho/trie"
)

// writeTrie compiles the keys (payloads 1, 2, 3, ...) and serializes the
// result into dir, returning the file path and the in-memory form.
func writeTrie(t *testing.T, dir string, keys ...string) (string, *frozen.Trie) {
	t.Helper()
	tr := trie.New()
	for i, key := range keys {
		if err := tr.Add([]byte(key), int32(i+1)); err != nil {
			t.Fatalf("Add(%q): %v", key, err)
		}
	}
	tr.BuildFailureLinks()
	f, err := frozen.Freeze(tr)
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	path := filepath.Join(dir, "trie.bin")
	if err := f.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return path, f
}

func TestOpen_RoundTrip(t *testing.T) {
	path, f := writeTrie(t, t.TempDir(), "ab")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer m.Close()

	if got, want := m.NumNodes(), f.NumNodes(); got != want {
		t.Errorf("NumNodes() = %d, want %d", got, want)
	}

	match, ok, err := m.FindAnchored([]byte("ab"), 'a', 0)
	if err != nil {
		t.Fatalf("FindAnchored: %v", err)
	}
	if !ok || match.Start != 0 || match.End != 2 || match.Payload != 1 {
		t.Errorf("FindAnchored = (%v, %+v), want (0, 2, 1)", ok, match)
	}
}

// TestFindAnchored_MatchesInMemory runs the anchored scanner over the same
// inputs against the mapped and in-memory forms and requires identical
// answers, resuming through every match.
func TestFindAnchored_MatchesInMemory(t *testing.T) {
	path, f := writeTrie(t, t.TempDir(), ".a.", ".ab.", ".abc.", ".z.")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer m.Close()

	texts := []string{
		".ab..abc.",
		".a..z..ab.",
		"no anchors at all",
		".....",
		"",
		".abc.abc..a.",
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			for start := 0; start <= len(text); {
				wantMatch, wantOK, err := f.FindAnchored([]byte(text), '.', start)
				if err != nil {
					t.Fatal(err)
				}
				gotMatch, gotOK, err := m.FindAnchored([]byte(text), '.', start)
				if err != nil {
					t.Fatal(err)
				}
				if gotOK != wantOK || gotMatch != wantMatch {
					t.Fatalf("start %d: mapped (%v, %+v), in-memory (%v, %+v)",
						start, gotOK, gotMatch, wantOK, wantMatch)
				}
				if !gotOK {
					break
				}
				start = gotMatch.End
			}
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	valid, _ := writeTrie(t, dir, "ab")
	validData, err := os.ReadFile(valid)
	if err != nil {
		t.Fatal(err)
	}

	write := func(t *testing.T, name string, data []byte) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := Open(filepath.Join(dir, "absent.bin")); err == nil {
			t.Error("Open(absent) = nil error")
		}
	})

	t.Run("too small", func(t *testing.T) {
		path := write(t, "small.bin", []byte{0xBB})
		if _, err := Open(path); !errors.Is(err, ErrTooSmall) {
			t.Errorf("Open = %v, want ErrTooSmall", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		path := write(t, "empty.bin", nil)
		if _, err := Open(path); !errors.Is(err, ErrTooSmall) {
			t.Errorf("Open = %v, want ErrTooSmall", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		data := bytes.Clone(validData)
		data[0], data[1] = 0xDE, 0xAD
		path := write(t, "magic.bin", data)
		if _, err := Open(path); !errors.Is(err, ErrBadMagic) {
			t.Errorf("Open = %v, want ErrBadMagic", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		path := write(t, "trunc.bin", validData[:len(validData)-4])
		if _, err := Open(path); !errors.Is(err, ErrTruncated) {
			t.Errorf("Open = %v, want ErrTruncated", err)
		}
	})

	t.Run("header cut mid count", func(t *testing.T) {
		path := write(t, "midcount.bin", validData[:6])
		if _, err := Open(path); !errors.Is(err, ErrTruncated) {
			t.Errorf("Open = %v, want ErrTruncated", err)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data := append(bytes.Clone(validData), 0x00)
		path := write(t, "trailing.bin", data)
		if _, err := Open(path); !errors.Is(err, ErrTruncated) {
			t.Errorf("Open = %v, want ErrTruncated", err)
		}
	})

	t.Run("huge count", func(t *testing.T) {
		data := bytes.Clone(validData)
		binary.NativeEndian.PutUint64(data[2:], ^uint64(0))
		path := write(t, "huge.bin", data)
		if _, err := Open(path); !errors.Is(err, ErrTruncated) {
			t.Errorf("Open = %v, want ErrTruncated", err)
		}
	})
}

// TestFindAnchored_CorruptChildIndex corrupts a child index so the walk
// lands outside the node arrays, which must surface as a bounds error, not
// a wild read.
func TestFindAnchored_CorruptChildIndex(t *testing.T) {
	dir := t.TempDir()
	valid, _ := writeTrie(t, dir, "ab")
	data, err := os.ReadFile(valid)
	if err != nil {
		t.Fatal(err)
	}

	// layout for the 3-node, 2-edge, 1-payload dump: the indices array data
	// begins after the magic, four node-attribute arrays, and the chars
	// array, at offset 2 + (8+12) + (8+12) + (8+6) + (8+6) + (8+2) + 8 = 88
	const indicesOffset = 88
	binary.NativeEndian.PutUint32(data[indicesOffset:], 1<<20)

	path := filepath.Join(dir, "corrupt.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer m.Close()

	_, _, err = m.FindAnchored([]byte("ab"), 'a', 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("FindAnchored on corrupt file = %v, want ErrOutOfBounds", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	path, _ := writeTrie(t, t.TempDir(), "ab")
	m, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
