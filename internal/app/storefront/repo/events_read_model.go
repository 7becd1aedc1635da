package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// EventsReadModel reads tracking events from the outbox_events table.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves events newest first with optional filters.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	stmt := eventsStatement(req)

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

func eventsStatement(req *list_events.Request) spanner.Statement {
	return query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		WhereIf(req.EventType != nil, func() query.Condition { return query.Eq(m_outbox.EventType, *req.EventType) }).
		WhereIf(req.AggregateID != nil, func() query.Condition { return query.Eq(m_outbox.AggregateID, *req.AggregateID) }).
		WhereIf(req.Status != nil, func() query.Condition { return query.Eq(m_outbox.Status, *req.Status) }).
		OrderBy(m_outbox.CreatedAt, query.Desc).
		Limit(int64(req.Limit)).
		Build()
}
