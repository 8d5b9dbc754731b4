package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "saves", "idleforge.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return map[string]Store{
		"sqlite": db,
		"memory": NewMemory(),
	}
}

func TestPutGetReplace(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 8, 30, 0, 123, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first := Slot{Name: "main", SaveID: "a", Version: 1, SavedAt: at, PlayTimeSeconds: 5, Blob: []byte{1, 2, 3}}
			if err := s.Put(ctx, first); err != nil {
				t.Fatalf("Put: %v", err)
			}
			second := first
			second.SaveID = "b"
			second.Blob = []byte{9}
			if err := s.Put(ctx, second); err != nil {
				t.Fatalf("Put replace: %v", err)
			}

			got, err := s.Get(ctx, "main")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.SaveID != "b" || !bytes.Equal(got.Blob, []byte{9}) || !got.SavedAt.Equal(at) || got.PlayTimeSeconds != 5 {
				t.Fatalf("unexpected slot %+v", got)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := s.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on delete, got %v", err)
			}
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for i, slot := range []string{"old", "new", "mid"} {
				offset := map[int]time.Duration{0: 0, 1: 2 * time.Hour, 2: time.Hour}[i]
				if err := s.Put(ctx, Slot{Name: slot, SaveID: slot, Version: 1, SavedAt: base.Add(offset), Blob: []byte(slot)}); err != nil {
					t.Fatalf("Put %s: %v", slot, err)
				}
			}
			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 3 || list[0].Name != "new" || list[1].Name != "mid" || list[2].Name != "old" {
				t.Fatalf("unexpected order: %+v", list)
			}
			if list[0].Blob != nil {
				t.Fatalf("List should not load blobs")
			}

			if err := s.Delete(ctx, "mid"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			list, _ = s.List(ctx)
			if len(list) != 2 {
				t.Fatalf("expected 2 slots after delete, got %d", len(list))
			}
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idleforge.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Put(context.Background(), Slot{Name: "main", SaveID: "x", Version: 1, SavedAt: time.Now(), Blob: []byte("blob")}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, err := db.Get(context.Background(), "main")
	if err != nil || string(got.Blob) != "blob" {
		t.Fatalf("Get after reopen: %+v, %v", got, err)
	}
}
