// Package collection keeps an ordered list of records in memory and
// mirrors it, as one JSON array, to a key in a kv.Store.
//
// The list is read from the store once, on first use. Every mutation
// writes the whole list back before it becomes visible in memory, so a
// failed write leaves both sides unchanged.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/devkit/internal/kv"
)

var (
	// ErrCorrupt wraps decode failures of the stored text.
	// A corrupt collection stays unusable until the process restarts.
	ErrCorrupt = errors.New("stored collection is corrupt")

	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrExists is returned by InsertUnique when an equal record is present.
	ErrExists = errors.New("record already exists")
)

// Record is anything stored in a collection.
type Record interface {
	RecordID() string
}

// Order decides where new records go.
type Order int

const (
	// Append adds new records at the end.
	Append Order = iota
	// Prepend adds new records at the front (newest first).
	Prepend
)

// Collection is a list of T persisted under a single key.
// It is safe for concurrent use.
type Collection[T Record] struct {
	mu    sync.Mutex
	store kv.Store
	key   string
	order Order

	items   []T
	loaded  bool
	loadErr error

	observers map[int]func([]T)
	nextObs   int
}

// New creates a collection bound to key. Nothing is read until the
// first operation.
func New[T Record](store kv.Store, key string, order Order) *Collection[T] {
	return &Collection[T]{
		store:     store,
		key:       key,
		order:     order,
		observers: make(map[int]func([]T)),
	}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string { return c.key }

// Load reads the collection from the store. It is a no-op once loaded.
// A missing key yields an empty collection.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadLocked(ctx)
}

func (c *Collection[T]) loadLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	if c.loadErr != nil {
		return c.loadErr
	}

	text, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		// Store errors are not latched: the next call tries again.
		return fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	items := []T{}
	if ok {
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			c.loadErr = fmt.Errorf("%w: %s: %v", ErrCorrupt, c.key, err)
			return c.loadErr
		}
		if items == nil {
			items = []T{}
		}
	}

	c.items = items
	c.loaded = true
	c.notifyLocked()
	return nil
}

// Persist writes the current list to the store, overwriting it.
func (c *Collection[T]) Persist(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return err
	}
	return c.write(ctx, c.items)
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", c.key, err)
	}
	return nil
}

// commit persists next and, only if that succeeds, makes it current.
func (c *Collection[T]) commit(ctx context.Context, next []T) error {
	if err := c.write(ctx, next); err != nil {
		return err
	}
	c.items = next
	c.notifyLocked()
	return nil
}

// Items returns a copy of the list in its stored order.
func (c *Collection[T]) Items(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	return clone(c.items), nil
}

// Len returns the number of records.
func (c *Collection[T]) Len(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return 0, err
	}
	return len(c.items), nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.loadLocked(ctx); err != nil {
		return zero, err
	}
	i := c.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.items[i], nil
}

// Insert adds rec according to the collection order and persists.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return err
	}
	return c.commit(ctx, c.with(rec))
}

// InsertUnique is Insert guarded by same: if any stored record is the
// same as rec, nothing is written and ErrExists is returned.
// The check and the insert happen under one lock.
func (c *Collection[T]) InsertUnique(ctx context.Context, rec T, same func(stored, rec T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return err
	}
	for _, stored := range c.items {
		if same(stored, rec) {
			return fmt.Errorf("%w: %s", ErrExists, stored.RecordID())
		}
	}
	return c.commit(ctx, c.with(rec))
}

func (c *Collection[T]) with(rec T) []T {
	next := make([]T, 0, len(c.items)+1)
	if c.order == Prepend {
		next = append(next, rec)
		return append(next, c.items...)
	}
	next = append(next, c.items...)
	return append(next, rec)
}

// Update replaces the record with the given id by fn(record) and persists.
// An unknown id returns ErrNotFound without writing.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(T) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.loadLocked(ctx); err != nil {
		return zero, err
	}
	i := c.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := clone(c.items)
	next[i] = fn(next[i])
	if err := c.commit(ctx, next); err != nil {
		return zero, err
	}
	return next[i], nil
}

// Delete removes the record with the given id and persists.
// It reports false, without writing, when no such record exists.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return false, err
	}
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	if err := c.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every record and persists. Clearing an empty
// collection writes nothing.
func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(ctx); err != nil {
		return err
	}
	if len(c.items) == 0 {
		return nil
	}
	return c.commit(ctx, []T{})
}

// Subscribe registers fn to receive a snapshot of the list after the
// initial load and after every committed mutation. Observers run with
// the collection locked and must not call back into it.
func (c *Collection[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Collection[T]) notifyLocked() {
	for _, fn := range c.observers {
		fn(clone(c.items))
	}
}

func (c *Collection[T]) indexOf(id string) int {
	for i, rec := range c.items {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
