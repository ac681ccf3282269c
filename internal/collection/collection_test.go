package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/devkit/internal/store/memory"
)

type item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (i item) RecordID() string { return i.ID }

// flakyStore fails every Set while failing is true.
type flakyStore struct {
	*memory.Store
	failing bool
	sets    int
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.sets++
	if s.failing {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	c := New[item](memory.New(), "items", Append)

	items, err := c.Items(context.Background())
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Items() = %v, want empty", items)
	}
}

func TestLoadCorruptText(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_ = store.Set(ctx, "items", "{not json")

	c := New[item](store, "items", Append)

	if err := c.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() error = %v, want ErrCorrupt", err)
	}
	// Every later operation reports the same failure and nothing is written.
	if err := c.Insert(ctx, item{ID: "1"}); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Insert() error = %v, want ErrCorrupt", err)
	}
	if v, _, _ := store.Get(ctx, "items"); v != "{not json" {
		t.Errorf("stored text was overwritten: %q", v)
	}
}

func TestLoadNullIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_ = store.Set(ctx, "items", "null")

	c := New[item](store, "items", Append)
	n, err := c.Len(ctx)
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestPersistThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	c := New[item](store, "items", Append)
	for _, it := range []item{{ID: "a", Text: "one"}, {ID: "b", Text: "two\nlines"}} {
		if err := c.Insert(ctx, it); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	if err := c.Persist(ctx); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	// A fresh collection over the same store simulates a reload.
	reloaded := New[item](store, "items", Append)
	got, err := reloaded.Items(ctx)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	want, _ := c.Items(ctx)
	if len(got) != len(want) {
		t.Fatalf("reloaded %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPersistEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	c := New[item](store, "items", Append)
	if err := c.Persist(ctx); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if v, _, _ := store.Get(ctx, "items"); v != "[]" {
		t.Errorf("stored = %q, want []", v)
	}
}

func TestInsertOrder(t *testing.T) {
	tests := []struct {
		name     string
		order    Order
		expected []string
	}{
		{name: "append", order: Append, expected: []string{"1", "2", "3"}},
		{name: "prepend", order: Prepend, expected: []string{"3", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c := New[item](memory.New(), "items", tt.order)
			for _, id := range []string{"1", "2", "3"} {
				if err := c.Insert(ctx, item{ID: id}); err != nil {
					t.Fatalf("Insert() error = %v", err)
				}
			}
			got, _ := c.Items(ctx)
			if !equal(ids(got), tt.expected) {
				t.Errorf("order = %v, want %v", ids(got), tt.expected)
			}
		})
	}
}

func TestInsertUnique(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	c := New[item](store, "items", Prepend)

	sameText := func(stored, rec item) bool { return stored.Text == rec.Text }

	if err := c.InsertUnique(ctx, item{ID: "1", Text: "x"}, sameText); err != nil {
		t.Fatalf("InsertUnique() error = %v", err)
	}
	writes := store.sets

	err := c.InsertUnique(ctx, item{ID: "2", Text: "x"}, sameText)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("InsertUnique() duplicate error = %v, want ErrExists", err)
	}
	if n, _ := c.Len(ctx); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
	if store.sets != writes {
		t.Error("duplicate insert should not write")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	c := New[item](memory.New(), "items", Append)
	_ = c.Insert(ctx, item{ID: "1", Text: "old"})

	updated, err := c.Update(ctx, "1", func(it item) item {
		it.Text = "new"
		return it
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Text != "new" {
		t.Errorf("Update() returned %+v", updated)
	}

	got, err := c.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Text != "new" {
		t.Errorf("Get() = %+v, want updated text", got)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	c := New[item](store, "items", Append)
	_ = c.Insert(ctx, item{ID: "1"})
	writes := store.sets

	called := false
	_, err := c.Update(ctx, "missing", func(it item) item {
		called = true
		return it
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if called {
		t.Error("update func should not run for an unknown id")
	}
	if store.sets != writes {
		t.Error("unknown id should not write")
	}
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	c := New[item](memory.New(), "items", Append)
	_ = c.Insert(ctx, item{ID: "1"})
	_ = c.Insert(ctx, item{ID: "2"})

	removed, err := c.Delete(ctx, "1")
	if err != nil || !removed {
		t.Fatalf("Delete() = (%v, %v), want (true, nil)", removed, err)
	}

	removed, err = c.Delete(ctx, "1")
	if err != nil || removed {
		t.Fatalf("second Delete() = (%v, %v), want (false, nil)", removed, err)
	}

	if n, _ := c.Len(ctx); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	c := New[item](store, "items", Prepend)
	_ = c.Insert(ctx, item{ID: "1"})
	_ = c.Insert(ctx, item{ID: "2"})

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n, _ := c.Len(ctx); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
	if v, _, _ := store.Get(ctx, "items"); v != "[]" {
		t.Errorf("stored = %q, want []", v)
	}
}

func TestFailedWriteKeepsMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	c := New[item](store, "items", Append)
	_ = c.Insert(ctx, item{ID: "1", Text: "kept"})

	store.failing = true

	if err := c.Insert(ctx, item{ID: "2"}); err == nil {
		t.Error("Insert() should fail when the store fails")
	}
	if _, err := c.Update(ctx, "1", func(it item) item { it.Text = "lost"; return it }); err == nil {
		t.Error("Update() should fail when the store fails")
	}
	if _, err := c.Delete(ctx, "1"); err == nil {
		t.Error("Delete() should fail when the store fails")
	}

	got, _ := c.Items(ctx)
	if len(got) != 1 || got[0].Text != "kept" {
		t.Errorf("Items() = %+v, want the state before the failed writes", got)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := New[item](memory.New(), "items", Append)
	_ = c.Insert(ctx, item{ID: "1", Text: "a"})

	got, _ := c.Items(ctx)
	got[0].Text = "mutated"

	again, _ := c.Items(ctx)
	if again[0].Text != "a" {
		t.Error("Items() should return a copy")
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	c := New[item](memory.New(), "items", Append)

	var snapshots [][]string
	unsubscribe := c.Subscribe(func(items []item) {
		snapshots = append(snapshots, ids(items))
	})

	_ = c.Load(ctx)
	_ = c.Insert(ctx, item{ID: "1"})
	_, _ = c.Delete(ctx, "missing") // no-op, no notification
	_, _ = c.Delete(ctx, "1")

	unsubscribe()
	_ = c.Insert(ctx, item{ID: "2"})

	expected := [][]string{{}, {"1"}, {}}
	if len(snapshots) != len(expected) {
		t.Fatalf("got %d notifications, want %d: %v", len(snapshots), len(expected), snapshots)
	}
	for i := range expected {
		if !equal(snapshots[i], expected[i]) {
			t.Errorf("snapshot %d = %v, want %v", i, snapshots[i], expected[i])
		}
	}
}
