package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// UpdateFn transforms the current value of a key into its replacement.
// old is nil when the key does not exist yet.
type UpdateFn func(old []byte) ([]byte, error)

// KV is the flat key-value store all persistent state lives in. Keys are
// namespaced with colon-separated prefixes. ScanPrefix returns values in no
// particular order; callers re-impose ordering. Update applies fn atomically
// with respect to other Update calls on the same key, so read-modify-write
// cycles cannot lose writes.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ScanPrefix(ctx context.Context, prefix string) ([][]byte, error)
	Update(ctx context.Context, key string, fn UpdateFn) error
}
