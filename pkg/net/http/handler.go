package http

import (
	"context"
	"errors"

	"github.com/LerianStudio/docker-api/pkg"
	libLog "github.com/LerianStudio/docker-api/pkg/log"
	libOpentelemetry "github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

// FiberErrorHandler is the error handler installed on the Fiber app.
// Framework errors (bad JSON, unknown route) are rendered as-is; any other
// error is logged through the request logger and rendered as a 500.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	libOpentelemetry.HandleSpanError(trace.SpanFromContext(ctx), "handler error", err)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return RenderError(c, err)
	}

	logger := pkg.NewLoggerFromContext(ctx)
	logger.Log(ctx, libLog.LevelError,
		"handler error",
		libLog.String("method", c.Method()),
		libLog.String("path", c.Path()),
		libLog.Err(err),
	)

	return RenderError(c, err)
}

// renderChainError renders err from the rest of the chain immediately, so the
// calling middleware observes the final status code.
func renderChainError(c *fiber.Ctx, err error) {
	if err == nil {
		return
	}

	if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
		_ = c.SendStatus(fiber.StatusInternalServerError)
	}
}
