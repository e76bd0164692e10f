package http

import (
	"net/http"

	"github.com/LerianStudio/docker-api/pkg"
	cn "github.com/LerianStudio/docker-api/pkg/constants"
	libOpentelemetry "github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WithTelemetry opens a server span per request, continuing any incoming
// W3C trace context, and stores the tracer in the user context for handlers.
func WithTelemetry(tracer trace.Tracer, excludedRoutes ...string) fiber.Handler {
	excluded := make(map[string]struct{}, len(excludedRoutes))
	for _, r := range excludedRoutes {
		excluded[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, skip := excluded[c.Path()]; skip || tracer == nil {
			return c.Next()
		}

		ctx := libOpentelemetry.ExtractHTTPContext(c)

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
				attribute.String("app.request.request_id", c.Get(cn.HeaderID)),
			),
		)
		defer span.End()

		c.SetUserContext(pkg.ContextWithTracer(ctx, tracer))

		renderChainError(c, c.Next())

		status := c.Response().StatusCode()
		route := routeLabel(c, status)

		span.SetName(c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)

		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		return nil
	}
}
