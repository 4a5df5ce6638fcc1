package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetLogger(t *testing.T) {
	t.Helper()
	log = nil
	once = sync.Once{}
	t.Cleanup(func() {
		log = nil
		once = sync.Once{}
	})
}

func TestGetLogger_NopBeforeInit(t *testing.T) {
	resetLogger(t)
	assert.NotNil(t, GetLogger())
	Info(context.Background(), "dropped")
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	assert.NotSame(t, GetLogger(), WithContext(ctx))

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
	Sync()
}

func TestWithContext_TypedKeyAndNil(t *testing.T) {
	resetLogger(t)
	Init("production")

	//nolint:staticcheck // nil context is accepted
	assert.Same(t, GetLogger(), WithContext(nil))
	assert.Same(t, GetLogger(), WithContext(context.Background()))

	ctx := context.WithValue(context.Background(), RequestIDKey, "typed")
	assert.NotSame(t, GetLogger(), WithContext(ctx))
}

func TestInit_PanicsWhenBuildFails(t *testing.T) {
	resetLogger(t)
	orig := buildLogger
	t.Cleanup(func() { buildLogger = orig })
	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("build failed")
	}

	assert.Panics(t, func() { Init("production") })
}
