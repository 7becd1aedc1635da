package tracking

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

type trackerFunc func(ctx context.Context, event domain.TrackingEvent) error

func (f trackerFunc) Track(ctx context.Context, event domain.TrackingEvent) error {
	return f(ctx, event)
}

func TestRecorder_SurvivesCanceledRequest(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(zap.NewNop()) })

	var deadline bool
	rec := NewRecorder(trackerFunc(func(ctx context.Context, _ domain.TrackingEvent) error {
		_, deadline = ctx.Deadline()
		return ctx.Err()
	}), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec.Record(ctx, &domain.AddToCartEvent{SessionID: "s1"})
	rec.Wait()
	assert.True(t, deadline)
	assert.Zero(t, logs.Len())
}

func TestRecorder_LogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(zap.NewNop()) })

	rec := NewRecorder(trackerFunc(func(context.Context, domain.TrackingEvent) error {
		return errors.New("spanner unavailable")
	}), 0)

	rec.Record(context.Background(), &domain.PurchaseEvent{BackendOrderID: "m1"})
	rec.Wait()

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, domain.EventPurchase, fields["event_type"])
	assert.Equal(t, "m1", fields["aggregate_id"])
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() { rec.Record(context.Background(), &domain.AddToCartEvent{}) })
}

func TestRecorder_SlowTrackerDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	var tracked atomic.Bool
	rec := NewRecorder(trackerFunc(func(ctx context.Context, _ domain.TrackingEvent) error {
		select {
		case <-release:
			tracked.Store(true)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}), time.Second, WithBudget(10*time.Millisecond))

	start := time.Now()
	rec.Record(context.Background(), &domain.PurchaseEvent{BackendOrderID: "m1"})
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.False(t, tracked.Load())

	close(release)
	rec.Wait()
	assert.True(t, tracked.Load())
}

func TestRecorder_FastTrackerFinishesBeforeReturn(t *testing.T) {
	var tracked atomic.Bool
	rec := NewRecorder(trackerFunc(func(context.Context, domain.TrackingEvent) error {
		tracked.Store(true)
		return nil
	}), time.Second)

	rec.Record(context.Background(), &domain.AddToCartEvent{SessionID: "s1"})
	assert.True(t, tracked.Load())
}
