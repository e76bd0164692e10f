package runtime

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/LerianStudio/docker-api/pkg/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PanicPolicy decides what happens after a recovered panic has been logged.
type PanicPolicy int

const (
	// KeepRunning swallows the panic once it has been logged.
	KeepRunning PanicPolicy = iota
	// CrashProcess re-panics after logging.
	CrashProcess
)

// SafeGoWithContextAndComponent runs fn in a new goroutine. A panic inside fn
// is logged with its stack, recorded on the span in ctx and then handled
// according to policy.
func SafeGoWithContextAndComponent(
	ctx context.Context,
	logger log.Logger,
	component, name string,
	policy PanicPolicy,
	fn func(ctx context.Context),
) {
	go func() {
		defer RecoverWithPolicyAndContext(ctx, logger, component, name, policy)

		fn(ctx)
	}()
}

// RecoverWithPolicyAndContext must be deferred. It recovers a panic, logs it
// and records it on the active span, then applies policy.
func RecoverWithPolicyAndContext(ctx context.Context, logger log.Logger, component, name string, policy PanicPolicy) {
	if recovered := recover(); recovered != nil {
		HandlePanicValue(ctx, logger, recovered, component, name)

		if policy == CrashProcess {
			panic(recovered)
		}
	}
}

// HandlePanicValue processes a panic value already recovered elsewhere, for
// example by Fiber's recover middleware.
func HandlePanicValue(ctx context.Context, logger log.Logger, panicValue any, component, name string) {
	if panicValue == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	stack := debug.Stack()

	if logger != nil {
		logger.Log(ctx, log.LevelError, "panic recovered",
			log.String("component", component),
			log.String("source", name),
			log.String("panic.value", fmt.Sprintf("%v", panicValue)),
			log.String("panic.stack", string(stack)),
		)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("panic.recovered", trace.WithAttributes(
			attribute.String("panic.component", component),
			attribute.String("panic.goroutine_name", name),
			attribute.String("panic.value", fmt.Sprintf("%v", panicValue)),
		))
		span.SetStatus(codes.Error, "panic recovered")
	}
}
