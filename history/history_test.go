package history

import (
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	// Deterministic, strictly increasing timestamps.
	base := time.Unix(1700000000, 0)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return s
}

func TestAddAndRecent(t *testing.T) {
	s := openTestStore(t)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := s.Add(text, "en", 1.5); err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(entries))
	}
	if entries[0].Text != "third" || entries[1].Text != "second" {
		t.Errorf("wrong order: got %q, %q", entries[0].Text, entries[1].Text)
	}

	e := entries[0]
	if e.ID == "" {
		t.Error("entry ID not assigned")
	}
	if e.Language != "en" {
		t.Errorf("Language = %q, want en", e.Language)
	}
	if e.Duration != 1.5 {
		t.Errorf("Duration = %v, want 1.5", e.Duration)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRecentOnEmptyStore(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}

	if entries, _ := s.Recent(0); entries != nil {
		t.Errorf("Recent(0) = %v, want nil", entries)
	}
}

func TestRecentSkipsCorruptEntries(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Add("good", "", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// A raw value that is not JSON, keyed to sort newest.
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("99999999999999999999-corrupt"), []byte("not json"))
	})
	if err != nil {
		t.Fatalf("inject corrupt entry: %v", err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after skipping corrupt, got %d", len(entries))
	}
	if entries[0].Text != "good" {
		t.Errorf("Text = %q, want good", entries[0].Text)
	}
}
