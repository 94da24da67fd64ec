package store

import (
	"path/filepath"
	"testing"

	"github.com/amishk599/jobping/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	set, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len = %d, want 0 for a fresh database", set.Len())
	}
}

func TestSQLiteSaveThenLoad(t *testing.T) {
	s := newTestStore(t)
	want := model.NewSeenSet("https://example.com/1", "https://example.com/2")

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Load = %v, want %v", got.Slice(), want.Slice())
	}
}

func TestSQLiteSaveIdempotent(t *testing.T) {
	s := newTestStore(t)
	set := model.NewSeenSet("job-456")

	if err := s.Save(set); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(set); err != nil {
		t.Fatalf("second Save (duplicate): %v", err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1 after duplicate Save", n)
	}
}

func TestSQLiteSaveNeverShrinks(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(model.NewSeenSet("a", "b")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// A smaller set must not remove what is already recorded.
	if err := s.Save(model.NewSeenSet("c")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, id := range []string{"a", "b", "c"} {
		if !got.Has(id) {
			t.Errorf("expected %q to survive", id)
		}
	}
}

func TestSQLiteReset(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(model.NewSeenSet("a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d after Reset, want 0", n)
	}
}
