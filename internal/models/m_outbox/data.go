package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is a row of the outbox_events table.
type Data struct {
	EventID      string             `spanner:"event_id" json:"event_id"`
	EventType    string             `spanner:"event_type" json:"event_type"`
	AggregateID  string             `spanner:"aggregate_id" json:"aggregate_id"`
	Payload      spanner.NullJSON   `spanner:"payload" json:"payload"`
	Status       string             `spanner:"status" json:"status"`
	CreatedAt    time.Time          `spanner:"created_at" json:"created_at"`
	ProcessedAt  spanner.NullTime   `spanner:"processed_at" json:"processed_at"`
	RetryCount   int64              `spanner:"retry_count" json:"retry_count"`
	ErrorMessage spanner.NullString `spanner:"error_message" json:"error_message"`
}
