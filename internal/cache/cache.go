package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lavandel/flower_storefront/pkg/logger"
)

// Cache is the read-through layer over a Store. Values are JSON-encoded
// so the in-memory and Redis backends behave identically.
type Cache struct {
	store Store
	group singleflight.Group
	log   logger.Logger
}

func New(store Store, log logger.Logger) *Cache {
	return &Cache{
		store: store,
		log:   log,
	}
}

// Get reports whether the key held a fresh entry and decodes it into
// dest. A miss or an expired entry returns (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}

	if err = json.Unmarshal(data, dest); err != nil {
		// A corrupt entry behaves as a miss and is dropped.
		_ = c.store.Delete(ctx, key)
		c.log.WarnContext(ctx, "dropped corrupt cache entry", logger.String("key", key), logger.Err(err))
		return false, nil
	}

	return true, nil
}

// Set overwrites any existing entry for the key.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %q: marshal: %w", key, err)
	}

	if err = c.store.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	return nil
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

func (c *Cache) InvalidateByPattern(ctx context.Context, pattern string) error {
	return c.store.DeleteByPattern(ctx, pattern)
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.store.DeleteAll(ctx)
}

// Fetch is the read-through binding: a cached value is served as is,
// otherwise fetch runs (collapsed per key across concurrent callers)
// and its result is stored with the given TTL. A fetch failure
// propagates to the caller and leaves any prior entry untouched.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T

	ok, err := c.Get(ctx, key, &cached)
	if err != nil {
		// A broken backend must not take reads down with it.
		c.log.WarnContext(ctx, "cache read failed, falling through", logger.String("key", key), logger.Err(err))
	}
	if ok {
		return cached, nil
	}

	return Refresh(ctx, c, key, ttl, fetch)
}

// Refresh bypasses the cached value and re-populates the entry. It
// backs both a cache miss and an explicit refetch.
func Refresh[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	value, err, _ := c.group.Do(key, func() (any, error) {
		fetched, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}

		if setErr := c.Set(ctx, key, fetched, ttl); setErr != nil {
			c.log.WarnContext(ctx, "failed to store fetched value", logger.String("key", key), logger.Err(setErr))
		}

		return fetched, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return value.(T), nil
}
