// Package storage defines the key-value persistence contract shared by the
// sqlite, postgres and in-memory drivers.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// KV reads and writes whole values under fixed keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is a KV that can also group writes into one transaction.
type Store interface {
	KV
	WithinTx(ctx context.Context, fn func(ctx context.Context, kv KV) error) error
	Close() error
}
