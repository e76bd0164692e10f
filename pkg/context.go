package pkg

import (
	"context"
	"strings"

	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type customContextKey string

// CustomContextKey is the context key used to store CustomContextKeyValue.
var CustomContextKey = customContextKey("custom_context")

// CustomContextKeyValue holds the request-scoped facilities attached to a context.
type CustomContextKeyValue struct {
	HeaderID string
	Tracer   trace.Tracer
	Logger   log.Logger
}

func valuesFrom(ctx context.Context) *CustomContextKeyValue {
	values, _ := ctx.Value(CustomContextKey).(*CustomContextKeyValue)
	if values == nil {
		return &CustomContextKeyValue{}
	}

	cp := *values

	return &cp
}

// NewLoggerFromContext extracts the Logger stored in ctx, or a no-op logger.
//
//nolint:ireturn
func NewLoggerFromContext(ctx context.Context) log.Logger {
	if values, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && values.Logger != nil {
		return values.Logger
	}

	return log.NewNop()
}

// ContextWithLogger returns a copy of ctx carrying logger.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	values := valuesFrom(ctx)
	values.Logger = logger

	return context.WithValue(ctx, CustomContextKey, values)
}

// ContextWithTracer returns a copy of ctx carrying tracer.
func ContextWithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	values := valuesFrom(ctx)
	values.Tracer = tracer

	return context.WithValue(ctx, CustomContextKey, values)
}

// ContextWithHeaderID returns a copy of ctx carrying the request correlation id.
func ContextWithHeaderID(ctx context.Context, headerID string) context.Context {
	values := valuesFrom(ctx)
	values.HeaderID = headerID

	return context.WithValue(ctx, CustomContextKey, values)
}

// NewTrackingFromContext returns the logger, tracer and correlation id carried by ctx.
// Missing components fall back to a no-op logger, the global tracer and a fresh UUID.
//
//nolint:ireturn
func NewTrackingFromContext(ctx context.Context) (log.Logger, trace.Tracer, string) {
	values, _ := ctx.Value(CustomContextKey).(*CustomContextKeyValue)
	if values == nil {
		values = &CustomContextKeyValue{}
	}

	logger := values.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	tracer := values.Tracer
	if tracer == nil {
		tracer = otel.Tracer("docker-api.default")
	}

	headerID := strings.TrimSpace(values.HeaderID)
	if headerID == "" {
		headerID = uuid.New().String()
	}

	return logger, tracer, headerID
}
