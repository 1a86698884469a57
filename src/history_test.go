package skimmer

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"
)

func TestHistory(t *testing.T) {
	maxHistory := 50

	// Invalid arguments
	paths := []string{"/etc", "/proc"}
	if u, err := user.Current(); err == nil && u.Uid != "0" {
		paths = append(paths, "/etc/sudoers")
	}
	for _, path := range paths {
		if _, e := NewHistory(path, maxHistory); e == nil {
			t.Error("Error expected for: " + path)
		}
	}

	file := filepath.Join(t.TempDir(), "history")
	{ // Record queries
		h, err := NewHistory(file, maxHistory)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < maxHistory+10; i++ {
			if err := h.record(NewQueryState("foobar")); err != nil {
				t.Fatal(err)
			}
		}
	}
	{ // Read them back
		h, _ := NewHistory(file, maxHistory)
		if len(h.entries) != maxHistory {
			t.Errorf("Expected: %d, actual: %d\n", maxHistory, len(h.entries))
		}
		for _, entry := range h.entries {
			if entry != "foobar" {
				t.Error("Expected: foobar, actual: " + entry)
			}
		}
	}
	{ // Empty queries are skipped
		h, _ := NewHistory(file, maxHistory)
		h.record(NewQueryState("barfoo"))
		h.record(NewQueryState(""))
		h.record(NewQueryState("foobarbaz"))
	}
	{
		h, _ := NewHistory(file, maxHistory)
		if len(h.entries) != maxHistory {
			t.Errorf("Expected: %d, actual: %d\n", maxHistory, len(h.entries))
		}
		compare := func(idx int, exp string) {
			if h.entries[idx] != exp {
				t.Errorf("Expected: %s, actual: %s\n", exp, h.entries[idx])
			}
		}
		compare(maxHistory-3, "foobar")
		compare(maxHistory-2, "barfoo")
		compare(maxHistory-1, "foobarbaz")
	}

	// A smaller limit drops the oldest entries on load
	h, _ := NewHistory(file, 2)
	if len(h.entries) != 2 || h.entries[0] != "barfoo" {
		t.Errorf("unexpected entries: %q", h.entries)
	}
}

func TestHistoryNavigation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(file, []byte("first\nsecond\n"), 0600); err != nil {
		t.Fatal(err)
	}
	h, err := NewHistory(file, 10)
	if err != nil {
		t.Fatal(err)
	}

	query := NewQueryState("typed")
	step := func(move func(*QueryState) bool, changed bool, expected string) {
		t.Helper()
		if move(query) != changed || query.String() != expected {
			t.Errorf("expected %q (changed: %v), got %q", expected, changed, query.String())
		}
		if query.Cursor() != len(query.Runes()) {
			t.Errorf("cursor not at the end: %d", query.Cursor())
		}
	}
	step(h.newer, false, "typed")
	step(h.older, true, "second")
	// Edits of older entries are kept in memory only
	query.SetQuery("second edited")
	step(h.older, true, "first")
	step(h.older, false, "first")
	step(h.newer, true, "second edited")
	step(h.newer, true, "typed")
	step(h.newer, false, "typed")

	query.SetQuery("third")
	if err := h.record(query); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(file)
	if string(data) != "first\nsecond\nthird\n" {
		t.Errorf("unexpected file contents: %q", data)
	}
	// Recording drops the pending edits
	query.SetQuery("")
	step(h.older, true, "third")
	step(h.older, true, "second")
}
