package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// An entry is fresh strictly before expiresAt; at the boundary instant
// it is already stale.
func (e entry) isExpired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// MemoryStore keeps entries in a process-wide map. Eviction is lazy:
// an expired entry is dropped by the Get that observes it, there is no
// background sweep. The map is unbounded, which is acceptable because
// the catalog key space is small.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}

	if item.isExpired(m.now()) {
		delete(m.items, key)
		return nil, ErrNotFound
	}

	return item.data, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{
		data:      value,
		expiresAt: m.now().Add(ttl),
	}

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)

	return nil
}

func (m *MemoryStore) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.items {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched {
			delete(m.items, key)
		}
	}

	return nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]entry)

	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
