package http

import (
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
)

// ListEventsResponse is the body of GET /api/v1/events.
type ListEventsResponse struct {
	Events []*m_outbox.Data `json:"events"`
	Count  int              `json:"count"`
}

func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	events, err := h.listEvents.Execute(r.Context(), &list_events.Request{
		EventType:   optional(q, "event_type"),
		AggregateID: optional(q, "aggregate_id"),
		Status:      optional(q, "status"),
		Limit:       limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, ListEventsResponse{Events: events, Count: len(events)})
}
