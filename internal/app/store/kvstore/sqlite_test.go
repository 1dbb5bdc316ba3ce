package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dalemusser/stratanote/internal/domain/models"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func TestSQLiteStore_MissingKey(t *testing.T) {
	store := setupSQLite(t)

	var v string
	found, err := store.Get(context.Background(), "missing", &v)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for a missing key")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	files := []models.File{
		{ID: "a", Content: "alpha"},
		{ID: "b", Content: "beta", Archived: true},
	}
	if err := store.Set(ctx, KeyFiles, files); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got []models.File
	found, err := store.Get(ctx, KeyFiles, &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false after Set")
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].Content != "beta" || !got[1].Archived {
		t.Errorf("Get() = %+v, want the stored files", got)
	}
}

func TestSQLiteStore_Overwrite(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyShowArchived, false); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, KeyShowArchived, true); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	var v bool
	found, err := store.Get(ctx, KeyShowArchived, &v)
	if err != nil || !found {
		t.Fatalf("Get() = (%v, %v), want (true, nil)", found, err)
	}
	if !v {
		t.Error("Get() = false, want the overwritten value")
	}
}

func TestSQLiteStore_Ping(t *testing.T) {
	store := setupSQLite(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
