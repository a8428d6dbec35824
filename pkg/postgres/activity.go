package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/inncontrol/pkg/db"
)

// InsertActivity inserts a new activity record
func (d *DB) InsertActivity(ctx context.Context, entry *db.ActivityEntry) error {
	if _, err := uuid.Parse(entry.ID); err != nil {
		return fmt.Errorf("invalid activity id %q: %w", entry.ID, err)
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO activity (id, recorded_at, actor, action, entity, entity_id, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.RecordedAt.UTC(), entry.Actor, entry.Action, entry.Entity, entry.EntityID, entry.Summary)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListActivity retrieves the latest activity records, newest first
func (d *DB) ListActivity(ctx context.Context, limit int) ([]db.ActivityEntry, error) {
	query := `
		SELECT id, recorded_at, actor, action, entity, entity_id, summary
		FROM activity
		ORDER BY recorded_at DESC, seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []db.ActivityEntry
	for rows.Next() {
		var e db.ActivityEntry
		if err := rows.Scan(&e.ID, &e.RecordedAt, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		e.RecordedAt = e.RecordedAt.UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}

	return entries, nil
}
