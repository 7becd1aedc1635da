// Package tracking records analytics events without letting tracking
// failures reach the caller.
package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

const defaultBudget = 50 * time.Millisecond

// Option configures a Recorder.
type Option func(*Recorder)

// WithBudget sets how long Record waits for the write before leaving it to
// finish in the background. Zero never waits.
func WithBudget(d time.Duration) Option {
	return func(r *Recorder) { r.budget = d }
}

// Recorder sends events to a Tracker with its own deadline. The request
// context is detached so a client disconnect does not drop the event.
type Recorder struct {
	tracker contracts.Tracker
	timeout time.Duration
	budget  time.Duration
	log     *logger.Logger

	inflight sync.WaitGroup
}

func NewRecorder(tracker contracts.Tracker, timeout time.Duration, opts ...Option) *Recorder {
	r := &Recorder{
		tracker: tracker,
		timeout: timeout,
		budget:  defaultBudget,
		log:     logger.With(logger.String("component", "tracking")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record tracks event and logs a failure. It never returns an error and
// blocks the caller for at most the budget; a slower write keeps running
// until its own timeout.
func (r *Recorder) Record(ctx context.Context, event domain.TrackingEvent) {
	if r == nil || r.tracker == nil {
		return
	}

	done := make(chan struct{})
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		defer close(done)
		r.track(ctx, event)
	}()

	if r.budget <= 0 {
		return
	}
	timer := time.NewTimer(r.budget)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		r.log.Debug(ctx, "tracking event left in background",
			logger.String("event_type", event.EventType()),
		)
	}
}

// Wait blocks until every started write has finished.
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.inflight.Wait()
}

func (r *Recorder) track(ctx context.Context, event domain.TrackingEvent) {
	tctx := context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(tctx, r.timeout)
		defer cancel()
	}

	if err := r.tracker.Track(tctx, event); err != nil {
		r.log.Warn(ctx, "tracking event dropped",
			logger.String("event_type", event.EventType()),
			logger.String("aggregate_id", event.AggregateID()),
			logger.ErrorF(err),
		)
	}
}
