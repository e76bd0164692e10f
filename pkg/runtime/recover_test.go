//go:build unit

package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
	fields  [][]log.Field
}

func (l *recordingLogger) Log(_ context.Context, _ log.Level, msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, msg)
	l.fields = append(l.fields, fields)
}

func (l *recordingLogger) With(_ ...log.Field) log.Logger { return l }
func (l *recordingLogger) Enabled(_ log.Level) bool       { return true }
func (l *recordingLogger) Sync(_ context.Context) error   { return nil }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.entries...)
}

func TestSafeGoRecoversPanic(t *testing.T) {
	logger := &recordingLogger{}
	done := make(chan struct{})

	SafeGoWithContextAndComponent(context.Background(), logger, "server", "worker", KeepRunning, func(_ context.Context) {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine did not run")
	}

	require.Eventually(t, func() bool { return len(logger.messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "panic recovered", logger.messages()[0])
}

func TestRecoverWithPolicyCrashRepanics(t *testing.T) {
	logger := &recordingLogger{}

	assert.PanicsWithValue(t, "fatal", func() {
		defer RecoverWithPolicyAndContext(context.Background(), logger, "server", "critical", CrashProcess)
		panic("fatal")
	})

	assert.Equal(t, []string{"panic recovered"}, logger.messages())
}

func TestHandlePanicValueRecordsSpanEvent(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	ctx, span := tp.Tracer("test").Start(context.Background(), "request")
	HandlePanicValue(ctx, &recordingLogger{}, "bad", "http", "handler")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "panic.recovered", ended[0].Events()[0].Name)
}

func TestHandlePanicValueIgnoresNil(t *testing.T) {
	logger := &recordingLogger{}

	HandlePanicValue(context.Background(), logger, nil, "http", "handler")

	assert.Empty(t, logger.messages())
}
