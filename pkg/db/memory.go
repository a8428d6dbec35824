package db

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps activity for the lifetime of the process. It is used when
// no audit database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries []ActivityEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertActivity(ctx context.Context, entry *ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MemoryStore) ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	m.mu.Lock()
	// Reversed so equal timestamps list the latest insert first
	entries := make([]ActivityEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		entries = append(entries, m.entries[i])
	}
	m.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MemoryStore) Close() {}
