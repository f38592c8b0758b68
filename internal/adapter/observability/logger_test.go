package observability_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/observability"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/config"
)

func TestSetupLogger(t *testing.T) {
	lg := observability.SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "svc"})
	require.NotNil(t, lg)
	assert.True(t, lg.Enabled(context.Background(), slog.LevelDebug))

	lg = observability.SetupLogger(config.Config{AppEnv: "prod", OTELServiceName: "svc"})
	assert.False(t, lg.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, lg.Enabled(context.Background(), slog.LevelInfo))
}

func TestLoggerContextRoundTrip(t *testing.T) {
	base := context.Background()
	assert.Equal(t, slog.Default(), observability.LoggerFromContext(base))

	lg := slog.Default().With(slog.String("k", "v"))
	ctx := observability.ContextWithLogger(base, lg)
	assert.Equal(t, lg, observability.LoggerFromContext(ctx))

	// nil logger leaves the context untouched
	assert.Equal(t, ctx, observability.ContextWithLogger(ctx, nil))
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	base := context.Background()
	assert.Equal(t, "", observability.RequestIDFromContext(base))

	ctx := observability.ContextWithRequestID(base, "req-1")
	assert.Equal(t, "req-1", observability.RequestIDFromContext(ctx))

	// empty id leaves the context untouched
	assert.Equal(t, ctx, observability.ContextWithRequestID(ctx, ""))
}

func TestSetupTracing_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := observability.SetupTracing(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}
