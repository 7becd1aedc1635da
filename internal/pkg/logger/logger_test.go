package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	require.NoError(t, Init("debug", true))
	require.NoError(t, Init("warn", false))
	assert.Error(t, Init("loud", true))
}

func TestContextFieldsAreAppended(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	ctx := WithContext(context.Background(), String("session_id", "s-1"))
	ctx = WithContext(ctx, String("request_id", "r-9"))

	With(String("op", "cart.add")).Info(ctx, "added", Int("qty", 2))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "added", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "cart.add", fields["op"])
	assert.Equal(t, "s-1", fields["session_id"])
	assert.Equal(t, "r-9", fields["request_id"])
	assert.Equal(t, int64(2), fields["qty"])
}

func TestPackageLevelHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Info(context.Background(), "dropped")
	Warn(context.Background(), "kept")
	Error(context.Background(), "kept too")

	assert.Equal(t, 2, logs.Len())
}
