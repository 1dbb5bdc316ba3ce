package kvstore

import (
	"testing"

	"github.com/dalemusser/stratanote/internal/domain/models"
	"github.com/dalemusser/stratanote/internal/testutil"
)

func setupMongo(t *testing.T) *MongoStore {
	t.Helper()

	db := testutil.SetupTestDB(t)
	return &MongoStore{
		client: db.Client(),
		c:      db.Collection(CollectionName),
	}
}

func TestMongoStore_MissingKey(t *testing.T) {
	store := setupMongo(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var v string
	found, err := store.Get(ctx, "missing", &v)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for a missing key")
	}
}

func TestMongoStore_RoundTrip(t *testing.T) {
	store := setupMongo(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

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
	if len(got) != 2 || got[0].Content != "alpha" || !got[1].Archived {
		t.Errorf("Get() = %+v, want the stored files", got)
	}
}

func TestMongoStore_Overwrite(t *testing.T) {
	store := setupMongo(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

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
