package db

import "context"

// ActivityStore persists the audit trail of console mutations.
// Both MemoryStore and postgres.DB implement this interface.
type ActivityStore interface {
	InsertActivity(ctx context.Context, entry *ActivityEntry) error
	// ListActivity returns the newest entries first
	ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
	Close()
}
