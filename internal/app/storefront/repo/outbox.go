package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// EnrichEvent serializes a tracking event into a pending outbox event.
func EnrichEvent(event domain.TrackingEvent) (*contracts.OutboxEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     string(payload),
		Status:      m_outbox.StatusPending,
	}, nil
}

// OutboxTracker writes tracking events to the outbox_events table.
type OutboxTracker struct {
	committer *committer.Committer
	model     *m_outbox.Model
}

// NewOutboxTracker creates a Spanner-backed tracker.
func NewOutboxTracker(c *committer.Committer) *OutboxTracker {
	return &OutboxTracker{
		committer: c,
		model:     m_outbox.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (t *OutboxTracker) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	return t.model.InsertMut(&m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     nullJSON(event.Payload),
		Status:      event.Status,
	})
}

// Track commits one outbox row for event.
func (t *OutboxTracker) Track(ctx context.Context, event domain.TrackingEvent) error {
	outboxEvent, err := EnrichEvent(event)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(t.InsertMut(outboxEvent))

	if err := t.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit outbox event: %w", err)
	}
	return nil
}

func nullJSON(payload string) spanner.NullJSON {
	if payload == "" {
		return spanner.NullJSON{}
	}
	return spanner.NullJSON{Value: json.RawMessage(payload), Valid: true}
}

// MemoryOutbox keeps tracking events in process and serves them to the
// events query.
type MemoryOutbox struct {
	mu     sync.RWMutex
	events []*m_outbox.Data
	clock  clock.Clock
}

// NewMemoryOutbox creates an empty in-memory outbox.
func NewMemoryOutbox(clk clock.Clock) *MemoryOutbox {
	return &MemoryOutbox{clock: clk}
}

func (o *MemoryOutbox) Track(_ context.Context, event domain.TrackingEvent) error {
	outboxEvent, err := EnrichEvent(event)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, &m_outbox.Data{
		EventID:     outboxEvent.EventID,
		EventType:   outboxEvent.EventType,
		AggregateID: outboxEvent.AggregateID,
		Payload:     nullJSON(outboxEvent.Payload),
		Status:      outboxEvent.Status,
		CreatedAt:   o.clock.Now(),
	})
	return nil
}

// ListEvents returns matching events newest first.
func (o *MemoryOutbox) ListEvents(_ context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*m_outbox.Data, 0, len(o.events))
	for i := len(o.events) - 1; i >= 0; i-- {
		e := o.events[i]
		if req.EventType != nil && e.EventType != *req.EventType {
			continue
		}
		if req.AggregateID != nil && e.AggregateID != *req.AggregateID {
			continue
		}
		if req.Status != nil && e.Status != *req.Status {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	// Insertion order already breaks ties between equal timestamps.
	slices.SortStableFunc(out, func(a, b *m_outbox.Data) int { return b.CreatedAt.Compare(a.CreatedAt) })

	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}
