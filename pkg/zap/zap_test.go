//go:build unit

package zap

import (
	"context"
	"errors"
	"strings"
	"testing"

	logpkg "github.com/LerianStudio/docker-api/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level)

	return &Logger{logger: zap.New(core)}, observed
}

func TestLoggerNilReceiverFallsBackToNop(t *testing.T) {
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Log(context.Background(), logpkg.LevelInfo, "message")
	})
}

func TestLogDispatchesLevels(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)
	ctx := context.Background()

	logger.Log(ctx, logpkg.LevelDebug, "d")
	logger.Log(ctx, logpkg.LevelInfo, "i")
	logger.Log(ctx, logpkg.LevelWarn, "w")
	logger.Log(ctx, logpkg.LevelError, "e")
	logger.Log(ctx, logpkg.Level(99), "fallback")

	entries := observed.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[4].Level)
}

func TestLogConvertsFields(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.InfoLevel)

	logger.Log(context.Background(), logpkg.LevelInfo, "fields",
		logpkg.String("port", "3000"),
		logpkg.Int("count", 3),
		logpkg.Err(errors.New("boom")),
	)

	entries := observed.AllUntimed()
	require.Len(t, entries, 1)

	ctxMap := entries[0].ContextMap()
	assert.Equal(t, "3000", ctxMap["port"])
	assert.EqualValues(t, 3, ctxMap["count"])
	assert.Equal(t, "boom", ctxMap["error"])
}

func TestLogEscapesControlCharacters(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.InfoLevel)

	logger.Log(context.Background(), logpkg.LevelInfo, "line1\nline2", logpkg.String("v", "a\tb"))

	entries := observed.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, `line1\nline2`, entries[0].Message)
	assert.Equal(t, `a\tb`, entries[0].ContextMap()["v"])
}

func TestLogAppendsTraceCorrelation(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.InfoLevel)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.Log(ctx, logpkg.LevelInfo, "traced")

	entries := observed.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, traceID.String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, spanID.String(), entries[0].ContextMap()["span_id"])
}

func TestWith(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.InfoLevel)

	child := logger.With(logpkg.String("request_id", "abc"))
	child.Log(context.Background(), logpkg.LevelInfo, "child", logpkg.String("path", "/"))
	logger.Log(context.Background(), logpkg.LevelInfo, "parent")

	entries := observed.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/", entries[0].ContextMap()["path"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestEnabled(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.WarnLevel)

	assert.True(t, logger.Enabled(logpkg.LevelError))
	assert.True(t, logger.Enabled(logpkg.LevelWarn))
	assert.False(t, logger.Enabled(logpkg.LevelInfo))
	assert.False(t, logger.Enabled(logpkg.LevelDebug))
}

func TestSyncHonoursCancelledContext(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, logger.Sync(ctx), context.Canceled)
	assert.NoError(t, logger.Sync(context.Background()))
}

func TestNewValidatesConfig(t *testing.T) {
	_, _, err := New(Config{Environment: EnvironmentProduction})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "OTelLibraryName"))

	_, _, err = New(Config{Environment: "moon", OTelLibraryName: "docker-api"})
	require.Error(t, err)

	_, _, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "docker-api", Level: "loud"})
	require.Error(t, err)
}

func TestNewResolvesLevelByEnvironment(t *testing.T) {
	logger, level, err := New(Config{Environment: EnvironmentDevelopment, OTelLibraryName: "docker-api"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.Equal(t, zapcore.DebugLevel, logger.Level().Level())

	_, level, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "docker-api"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level.Level())

	_, level, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "docker-api", Level: "error"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, EnvironmentDevelopment, ParseEnvironment("development"))
	assert.Equal(t, EnvironmentDevelopment, ParseEnvironment(" Dev "))
	assert.Equal(t, EnvironmentProduction, ParseEnvironment("prod"))
	assert.Equal(t, EnvironmentTest, ParseEnvironment("test"))
	assert.Equal(t, EnvironmentProduction, ParseEnvironment("qa-eu-west"))
}
