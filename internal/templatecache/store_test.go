package templatecache

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	xterror "github.com/msto63/xentpl/foundation/core/error"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "cache", "templates.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// stores returns every Store implementation under test
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": newSQLiteStore(t),
		"memory": NewMemoryStore(),
	}
}

func testEntry(title, style string) *Entry {
	return &Entry{
		Title:           title,
		StyleID:         style,
		SourceHash:      "hash-" + title,
		CompilerVersion: "xentpl-1.0.0/tree-1",
		Tree:            []byte{0x01, 0x02, 0x03},
	}
}

func TestStore_PutGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
			entry := testEntry("thread_view", "1")
			entry.CreatedAt = created

			if err := store.Put(ctx, entry); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, err := store.Get(ctx, "thread_view", "1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got == nil {
				t.Fatal("Get() returned nil for stored entry")
			}
			if got.Title != "thread_view" || got.StyleID != "1" || got.SourceHash != "hash-thread_view" {
				t.Errorf("Get() = %+v", got)
			}
			if got.CompilerVersion != entry.CompilerVersion {
				t.Errorf("CompilerVersion = %v, want %v", got.CompilerVersion, entry.CompilerVersion)
			}
			if !bytes.Equal(got.Tree, entry.Tree) {
				t.Errorf("Tree = %v, want %v", got.Tree, entry.Tree)
			}
			if !got.CreatedAt.Equal(created) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
			}
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Put(ctx, testEntry("a", "1")); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			for _, key := range [][2]string{{"missing", "1"}, {"a", "2"}} {
				got, err := store.Get(ctx, key[0], key[1])
				if err != nil || got != nil {
					t.Errorf("Get(%s, %s) = %v, %v; want nil, nil", key[0], key[1], got, err)
				}
			}
		})
	}
}

func TestStore_PutReplaces(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Put(ctx, testEntry("a", "")); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			updated := testEntry("a", "")
			updated.SourceHash = "new-hash"
			updated.Tree = []byte{0xff}
			if err := store.Put(ctx, updated); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, err := store.Get(ctx, "a", "")
			if err != nil || got == nil {
				t.Fatalf("Get() = %v, %v", got, err)
			}
			if got.SourceHash != "new-hash" || !bytes.Equal(got.Tree, []byte{0xff}) {
				t.Errorf("entry not replaced: %+v", got)
			}

			stats, err := store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Entries != 1 {
				t.Errorf("Entries = %d, want 1", stats.Entries)
			}
		})
	}
}

func TestStore_PutValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
	}{
		{"missing title", func(e *Entry) { e.Title = "" }},
		{"missing hash", func(e *Entry) { e.SourceHash = "" }},
		{"missing version", func(e *Entry) { e.CompilerVersion = "" }},
		{"missing tree", func(e *Entry) { e.Tree = nil }},
	}

	for name, store := range stores(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				entry := testEntry("a", "1")
				tt.mutate(entry)
				err := store.Put(context.Background(), entry)
				if !xterror.HasCode(err, xterror.CodeInvalidInput) {
					t.Errorf("Put() error = %v, want invalid input", err)
				}
			})
		}
		t.Run(name+"/nil entry", func(t *testing.T) {
			if err := store.Put(context.Background(), nil); !xterror.HasCode(err, xterror.CodeInvalidInput) {
				t.Errorf("Put(nil) error = %v, want invalid input", err)
			}
		})
	}
}

func TestStore_DeleteAndPurge(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, e := range []*Entry{testEntry("a", "1"), testEntry("a", "2"), testEntry("b", "1")} {
				if err := store.Put(ctx, e); err != nil {
					t.Fatalf("Put() error = %v", err)
				}
			}

			stats, err := store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Entries != 3 || stats.Titles != 2 || stats.TreeBytes != 9 {
				t.Errorf("Stats() = %+v", stats)
			}

			if err := store.Delete(ctx, "a", "1"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if err := store.Delete(ctx, "a", "1"); err != nil {
				t.Errorf("Delete() of missing entry error = %v", err)
			}
			if got, _ := store.Get(ctx, "a", "1"); got != nil {
				t.Error("deleted entry still present")
			}
			if got, _ := store.Get(ctx, "a", "2"); got == nil {
				t.Error("other style of the same title must survive")
			}

			n, err := store.Purge(ctx)
			if err != nil {
				t.Fatalf("Purge() error = %v", err)
			}
			if n != 2 {
				t.Errorf("Purge() = %d, want 2", n)
			}

			stats, err = store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Entries != 0 || stats.TreeBytes != 0 {
				t.Errorf("Stats() after Purge = %+v", stats)
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	entry := testEntry("a", "")
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	entry.Tree[0] = 0xee

	got, _ := store.Get(ctx, "a", "")
	got.Tree[1] = 0xee

	again, _ := store.Get(ctx, "a", "")
	if !bytes.Equal(again.Tree, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("stored tree was modified: %v", again.Tree)
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := store.Put(ctx, testEntry("a", "")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "a", "")
	if err != nil || got == nil {
		t.Fatalf("Get() after reopen = %v, %v", got, err)
	}
	if reopened.Path() != path {
		t.Errorf("Path() = %v, want %v", reopened.Path(), path)
	}

	stats, err := reopened.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Location != path {
		t.Errorf("Location = %v, want %v", stats.Location, path)
	}
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := string(rune('a' + i))
			for j := 0; j < 10; j++ {
				if err := store.Put(ctx, testEntry(title, "")); err != nil {
					t.Errorf("Put() error = %v", err)
					return
				}
				if _, err := store.Get(ctx, title, ""); err != nil {
					t.Errorf("Get() error = %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Entries != 8 {
		t.Errorf("Entries = %d, want 8", stats.Entries)
	}
}
