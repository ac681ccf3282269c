package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "devkit.db")

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, ok, err := store.Get(ctx, "dev-toolkit-snippets"); err != nil || ok {
		t.Fatalf("Get() on fresh db = (%v, %v), want (false, nil)", ok, err)
	}

	if err := store.Set(ctx, "dev-toolkit-snippets", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "dev-toolkit-snippets", `[{"id":"b"}]`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen to check the value survived.
	store, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get(ctx, "dev-toolkit-snippets")
	if err != nil || !ok {
		t.Fatalf("Get() = (%q, %v, %v)", v, ok, err)
	}
	if v != `[{"id":"b"}]` {
		t.Errorf("Get() = %q, want last written value", v)
	}
}

func TestStoreInMemory(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok, _ := store.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get() = (%q, %v)", v, ok)
	}
	if store.Backend() != "sqlite" {
		t.Errorf("Backend() = %q", store.Backend())
	}
}
