package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// OutboxEvent is a tracking event enriched with persistence metadata.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	CreatedAt   time.Time
}

// Tracker records analytics events. Callers treat failures as non-fatal.
type Tracker interface {
	Track(ctx context.Context, event domain.TrackingEvent) error
}
