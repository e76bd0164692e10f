//go:build unit

package pkg

import (
	"context"
	"testing"

	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestNewTrackingFromContext_Defaults(t *testing.T) {
	logger, tracer, headerID := NewTrackingFromContext(context.Background())

	assert.IsType(t, log.NopLogger{}, logger)
	assert.NotNil(t, tracer)

	_, err := uuid.Parse(headerID)
	assert.NoError(t, err)
}

func TestNewTrackingFromContext_CarriesValues(t *testing.T) {
	base := log.NewNop()
	tracer := otel.Tracer("test")

	ctx := ContextWithLogger(context.Background(), base)
	ctx = ContextWithTracer(ctx, tracer)
	ctx = ContextWithHeaderID(ctx, "req-1")

	logger, gotTracer, headerID := NewTrackingFromContext(ctx)

	assert.Same(t, base, logger)
	assert.Equal(t, tracer, gotTracer)
	assert.Equal(t, "req-1", headerID)
	assert.Same(t, base, NewLoggerFromContext(ctx))
}

func TestContextValuesDoNotLeakToParent(t *testing.T) {
	parent := ContextWithHeaderID(context.Background(), "parent")
	child := ContextWithHeaderID(parent, "child")

	_, _, parentID := NewTrackingFromContext(parent)
	_, _, childID := NewTrackingFromContext(child)

	assert.Equal(t, "parent", parentID)
	assert.Equal(t, "child", childID)
}
