// Package committer implements the Golden Mutation Pattern for Spanner.
//
// Repositories never write. They translate an aggregate into
// *spanner.Mutation values, the caller collects those into a CommitPlan, and
// the Committer applies the whole plan in one transaction:
//
//	plan := committer.NewPlan()
//	plan.AddMultiple(r.cartMuts(cart))
//	plan.Add(r.outbox.InsertMut(event))
//	return r.committer.ApplyWithVersionCheck(ctx, versioned, plan)
//
// Aggregates that carry a version column are written with
// ApplyWithVersionCheck, which reads the stored version inside the
// read-write transaction and refuses the plan on mismatch.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// ErrVersionConflict is returned when the stored version no longer matches
// the version the aggregate was loaded with.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// CommitPlan collects mutations from several sources for one atomic apply.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates an empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{mutations: make([]*spanner.Mutation, 0)}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds every non-nil mutation in muts.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty reports whether the plan holds no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionedRow identifies the row whose version guards a plan.
type VersionedRow struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// Committer executes CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the plan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck applies the plan only if row still holds the
// expected version. A missing row counts as version 0, so the first save of
// a new aggregate passes with Expected == 0.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, row VersionedRow, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		current, err := readVersion(ctx, txn, row)
		if err != nil {
			return err
		}
		if current != row.Expected {
			return fmt.Errorf("%w: %s expected version %d, got %d", ErrVersionConflict, row.Table, row.Expected, current)
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}
	return nil
}

func readVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, row VersionedRow) (int64, error) {
	r, err := txn.ReadRow(ctx, row.Table, row.Key, []string{row.Column})
	if spanner.ErrCode(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s version: %w", row.Table, err)
	}

	var version int64
	if err := r.Column(0, &version); err != nil {
		return 0, fmt.Errorf("failed to parse %s version: %w", row.Table, err)
	}
	return version, nil
}
