package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/app/storefront/repo"
)

func main() {
	var (
		spannerDB   = flag.String("db", envOr("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/storefront-db"), "Spanner database path")
		eventType   = flag.String("type", "", "only events of this type")
		aggregateID = flag.String("aggregate", "", "only events of this session or order")
		status      = flag.String("status", "", "only events with this status")
		limit       = flag.Int("limit", 10, "maximum number of events")
	)
	flag.Parse()

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, *spannerDB)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	events, err := list_events.NewQuery(repo.NewEventsReadModel(client)).Execute(ctx, &list_events.Request{
		EventType:   optional(*eventType),
		AggregateID: optional(*aggregateID),
		Status:      optional(*status),
		Limit:       *limit,
	})
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found!")
		return
	}

	fmt.Println("Events in outbox_events table:")
	for i, e := range events {
		fmt.Printf("%d. %s - %s (aggregate: %s, status: %s, at: %s)\n",
			i+1, e.EventType, e.EventID, e.AggregateID, e.Status, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("\nTotal: %d events\n", len(events))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
