package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTTLBoundary(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Now()
	now := base
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "category:9:ru", []byte(`{"id":9}`), 24*time.Hour))

	now = base.Add(24*time.Hour - time.Millisecond)
	value, err := store.Get(ctx, "category:9:ru")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":9}`), value)

	// Exactly at the expiry instant the entry is already stale.
	now = base.Add(24 * time.Hour)
	_, err = store.Get(ctx, "category:9:ru")
	require.ErrorIs(t, err, ErrNotFound)

	// Expiry-on-read must evict, not just hide, the entry.
	store.mu.Lock()
	_, stillThere := store.items["category:9:ru"]
	store.mu.Unlock()
	require.False(t, stillThere)
}

func TestMemoryStoreSetOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Now()
	now := base
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "bouquets:ru", []byte(`"A"`), time.Minute))
	require.NoError(t, store.Set(ctx, "bouquets:ru", []byte(`"B"`), time.Hour))

	value, err := store.Get(ctx, "bouquets:ru")
	require.NoError(t, err)
	require.Equal(t, []byte(`"B"`), value)

	// The second Set replaced the expiry as well.
	now = base.Add(30 * time.Minute)
	value, err = store.Get(ctx, "bouquets:ru")
	require.NoError(t, err)
	require.Equal(t, []byte(`"B"`), value)
}

func TestMemoryStoreDeleteByPattern(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	keys := []string{"bouquets:en", "bouquet:42:en", "featured:bouquets"}
	for _, key := range keys {
		require.NoError(t, store.Set(ctx, key, []byte("x"), time.Hour))
	}

	require.NoError(t, store.DeleteByPattern(ctx, "bouquets:*"))

	_, err := store.Get(ctx, "bouquets:en")
	require.ErrorIs(t, err, ErrNotFound)

	for _, key := range []string{"bouquet:42:en", "featured:bouquets"} {
		_, err = store.Get(ctx, key)
		require.NoError(t, err, "key %q must survive pattern invalidation", key)
	}

	require.NoError(t, store.Delete(ctx, "bouquet:42:en"))
	_, err = store.Get(ctx, "bouquet:42:en")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "featured:bouquets")
	require.NoError(t, err)
}

func TestMemoryStoreDeleteByPatternMalformed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "bouquets:ru", []byte("x"), time.Hour))
	require.Error(t, store.DeleteByPattern(ctx, "bouquets:["))
}

func TestMemoryStoreDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "bouquets:ru", []byte("x"), time.Hour))
	require.NoError(t, store.Set(ctx, "flowers:ru", []byte("y"), time.Hour))

	require.NoError(t, store.DeleteAll(ctx))

	_, err := store.Get(ctx, "bouquets:ru")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "flowers:ru")
	require.ErrorIs(t, err, ErrNotFound)
}
