package idgen

import (
	"sort"
	"strings"
	"testing"
	"time"
)

func TestUUIDv7Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
		if _, err := Parse(id); err != nil {
			t.Fatalf("generated id does not parse: %v", err)
		}
	}
}

func TestUUIDv7TimeSortable(t *testing.T) {
	gen := UUIDv7()
	first := gen()
	time.Sleep(2 * time.Millisecond)
	second := gen()

	ids := []string{second, first}
	sort.Strings(ids)
	if ids[0] != first {
		t.Fatalf("ids not time-sortable: %s should precede %s", first, second)
	}
}

func TestNanoID(t *testing.T) {
	gen := NanoID(8)
	id := gen()
	if len(id) != 8 {
		t.Fatalf("len = %d, want 8", len(id))
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", r) {
			t.Fatalf("unexpected rune %q in %s", r, id)
		}
	}
	if gen() == gen() {
		t.Fatal("consecutive NanoIDs should differ")
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("quiz_", UUIDv7())
	id := gen()
	if !strings.HasPrefix(id, "quiz_") {
		t.Fatalf("id %s missing prefix", id)
	}
	if _, err := Parse(strings.TrimPrefix(id, "quiz_")); err != nil {
		t.Fatalf("suffix not a UUID: %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-uuid"); err == nil {
		t.Fatal("expected error")
	}
}
