package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/db"
)

// ActivityRecorder stores an audit entry for a completed mutation
type ActivityRecorder interface {
	Record(ctx context.Context, action, entity string, entityID int, summary string) error
}

// ActivityLister defines the store operations needed to show the audit trail
type ActivityLister interface {
	ListActivity(ctx context.Context, limit int) ([]db.ActivityEntry, error)
}

// recordActivity never fails the mutation it describes
func recordActivity(ctx context.Context, recorder ActivityRecorder, logger *zap.Logger, action, entity string, entityID int, summary string) {
	if recorder == nil {
		return
	}
	if err := recorder.Record(ctx, action, entity, entityID, summary); err != nil {
		logger.Warn("Failed to record activity",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Int("entity_id", entityID),
			zap.Error(err))
	}
}

// ListActivity returns the latest recorded mutations, newest first
func ListActivity(ctx context.Context, store ActivityLister, logger *zap.Logger, limit int) ([]db.ActivityEntry, error) {
	logger.Debug("Listing activity", zap.Int("limit", limit))

	entries, err := store.ListActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}
