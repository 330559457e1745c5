package persistence

import (
	"context"
	"fmt"

	"github.com/cargoflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// flushDomainEvents saves an aggregate's pending domain events to the
// outbox through the configured saver and clears them from the aggregate.
// The db handle must be the one the aggregate was just saved with so the
// outbox rows land in the same transaction. A nil saver means the outbox
// is not wired and events are discarded.
func flushDomainEvents(ctx context.Context, db *gorm.DB, saver shared.OutboxEventSaver, agg shared.AggregateRoot) error {
	if saver == nil {
		return nil
	}
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := saver.SaveEvents(ctx, db, events...); err != nil {
		return fmt.Errorf("failed to save events to outbox: %w", err)
	}
	agg.ClearDomainEvents()
	return nil
}
