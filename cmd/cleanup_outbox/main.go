package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// Config of the outbox cleanup job.
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	PendingRetentionDays   int
	BatchSize              int
	DryRun                 bool
}

// retentionRule expires events of one status by one timestamp column.
type retentionRule struct {
	status string
	column string
	days   int
}

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (projects/P/instances/I/databases/D)")
	flag.IntVar(&cfg.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&cfg.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.IntVar(&cfg.PendingRetentionDays, "pending-retention", 30, "Retention days for tracking events nobody relayed")
	flag.IntVar(&cfg.BatchSize, "batch", 500, "Events deleted per commit")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Count what would be deleted without deleting")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if err := logger.Init(*logLevel, false); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if cfg.SpannerDB == "" {
		logger.Error(ctx, "-database flag or SPANNER_DATABASE is required")
		os.Exit(2)
	}

	if err := cleanupOutbox(ctx, cfg); err != nil {
		logger.Error(ctx, "cleanup failed", logger.ErrorF(err))
		os.Exit(1)
	}
	logger.Info(ctx, "cleanup completed")
}

func rules(cfg Config) []retentionRule {
	return []retentionRule{
		{status: m_outbox.StatusCompleted, column: m_outbox.ProcessedAt, days: cfg.CompletedRetentionDays},
		{status: m_outbox.StatusFailed, column: m_outbox.ProcessedAt, days: cfg.FailedRetentionDays},
		{status: m_outbox.StatusPending, column: m_outbox.CreatedAt, days: cfg.PendingRetentionDays},
	}
}

func cleanupOutbox(ctx context.Context, cfg Config) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("create spanner client: %w", err)
	}
	defer client.Close()

	c := committer.NewCommitter(client)
	model := m_outbox.NewModel()
	now := time.Now().UTC()

	var total int64
	for _, rule := range rules(cfg) {
		if rule.days <= 0 {
			continue
		}
		cutoff := now.AddDate(0, 0, -rule.days)
		log := logger.With(
			logger.String("status", rule.status),
			logger.String("cutoff", cutoff.Format(time.RFC3339)),
		)

		if cfg.DryRun {
			n, err := countExpired(ctx, client, rule, cutoff)
			if err != nil {
				return err
			}
			log.Info(ctx, "would delete events", logger.Int64("count", n))
			total += n
			continue
		}

		n, err := deleteExpired(ctx, client, c, model, rule, cutoff, cfg.BatchSize)
		if err != nil {
			return err
		}
		log.Info(ctx, "deleted events", logger.Int64("count", n))
		total += n
	}

	logger.Info(ctx, "outbox cleanup finished", logger.Int64("total", total), logger.Bool("dry_run", cfg.DryRun))
	return nil
}

func expired(rule retentionRule, cutoff time.Time) *query.Builder {
	return query.From(m_outbox.TableName).
		Where(query.Eq(m_outbox.Status, rule.status)).
		Where(query.Lt(rule.column, cutoff))
}

func countExpired(ctx context.Context, client *spanner.Client, rule retentionRule, cutoff time.Time) (int64, error) {
	iter := client.Single().Query(ctx, expired(rule, cutoff).Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("count %s events: %w", rule.status, err)
	}
	var n int64
	if err := row.Columns(&n); err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return n, nil
}

// deleteExpired removes matching events batch by batch, one commit plan per
// batch, until a batch comes back short.
func deleteExpired(
	ctx context.Context,
	client *spanner.Client,
	c *committer.Committer,
	model *m_outbox.Model,
	rule retentionRule,
	cutoff time.Time,
	batch int,
) (int64, error) {
	stmt := expired(rule, cutoff).Select(m_outbox.EventID).Limit(int64(batch)).Build()

	var deleted int64
	for {
		ids, err := readIDs(ctx, client, stmt)
		if err != nil {
			return deleted, fmt.Errorf("select %s events: %w", rule.status, err)
		}
		if len(ids) == 0 {
			return deleted, nil
		}

		plan := committer.NewPlan()
		for _, id := range ids {
			plan.Add(model.DeleteMut(id))
		}
		if err := c.Apply(ctx, plan); err != nil {
			return deleted, fmt.Errorf("delete %s events: %w", rule.status, err)
		}
		deleted += int64(len(ids))

		if len(ids) < batch {
			return deleted, nil
		}
	}
}

func readIDs(ctx context.Context, client *spanner.Client, stmt spanner.Statement) ([]string, error) {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var ids []string
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		var id string
		if err := row.Columns(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
}
