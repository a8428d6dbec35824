package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recorder stamps activity entries with an ID, the time and the acting user
type Recorder struct {
	store ActivityStore
	actor string
	now   func() time.Time
}

func NewRecorder(store ActivityStore, actor string) *Recorder {
	return &Recorder{store: store, actor: actor, now: time.Now}
}

// SetActor changes the user recorded on subsequent entries (after login)
func (r *Recorder) SetActor(actor string) {
	r.actor = actor
}

// Record stores an entry for a completed mutation
func (r *Recorder) Record(ctx context.Context, action, entity string, entityID int, summary string) error {
	entry := &ActivityEntry{
		ID:         uuid.NewString(),
		RecordedAt: r.now().UTC(),
		Actor:      r.actor,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Summary:    summary,
	}
	if err := r.store.InsertActivity(ctx, entry); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
