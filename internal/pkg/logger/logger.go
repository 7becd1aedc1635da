// Package logger is a thin wrapper around zap with context-aware helpers.
package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu     sync.RWMutex
	global = &Logger{z: zap.NewNop()}
)

// Logger carries a fixed set of fields. Every method takes a context so
// request-scoped fields stored with WithContext end up on the line.
type Logger struct {
	z *zap.Logger
}

// Init replaces the global logger. level is one of debug, info, warn, error.
func Init(level string, asJSON bool) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("logger.Init: parse level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if !asJSON {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger.Init: build: %w", err)
	}

	SetLogger(z)
	return nil
}

// SetLogger installs z as the global logger. Tests use it with zaptest or
// observer cores.
func SetLogger(z *zap.Logger) {
	mu.Lock()
	global = &Logger{z: z}
	mu.Unlock()
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global.z
}

// Sync flushes buffered entries.
func Sync() error {
	return L().Sync()
}

// With returns a child of the global logger carrying fields.
func With(fields ...Field) *Logger {
	return &Logger{z: L().With(fields...)}
}

// WithContext stores fields in ctx. They are appended to every line logged
// with that context.
func WithContext(ctx context.Context, fields ...Field) context.Context {
	existing, _ := ctx.Value(ctxKey{}).([]Field)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fromContext(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}
	stored, _ := ctx.Value(ctxKey{}).([]Field)
	if len(stored) == 0 {
		return fields
	}
	return append(append(make([]Field, 0, len(stored)+len(fields)), stored...), fields...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.z.Debug(msg, fromContext(ctx, fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.z.Info(msg, fromContext(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.z.Warn(msg, fromContext(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.z.Error(msg, fromContext(ctx, fields)...)
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	With().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	With().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	With().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	With().Error(ctx, msg, fields...)
}
