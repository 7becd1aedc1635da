package list_events

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Request contains filtering parameters for listing tracking events.
type Request struct {
	EventType   *string // e.g. "purchase"
	AggregateID *string // session id or backend order id
	Status      *string // "pending", "completed", "failed"
	Limit       int
}

// EventsReadModel defines the interface for reading events.
type EventsReadModel interface {
	ListEvents(ctx context.Context, req *Request) ([]*m_outbox.Data, error)
}

// Query handles the list events query use case.
type Query struct {
	readModel EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute lists events newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_outbox.Data, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	return q.readModel.ListEvents(ctx, req)
}
