// Package kv defines the durable key-value text store the panels persist to.
package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store is closed")

// Store reads and writes whole text values by key.
//
// Implementations must treat Set as a full overwrite of the previous
// value. A missing key is reported by ok == false, never by an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error

	// Backend names the implementation ("memory", "sqlite", "redis").
	Backend() string
}
