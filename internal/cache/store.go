package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned on a miss or after lazy eviction of an
// expired entry.
var ErrNotFound = errors.New("cache: key not found")

// Store is a physical cache backend. The in-memory store is the
// default; the Redis store adds durability shared across instances.
// Encoding is left to the caller, values travel as byte slices.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching a glob pattern,
	// e.g. "bouquets:*" or "bouquet:42:*".
	DeleteByPattern(ctx context.Context, pattern string) error
	DeleteAll(ctx context.Context) error
	Close() error
}
