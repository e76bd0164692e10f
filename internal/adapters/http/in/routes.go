package in

import (
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/net/http"
	"github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"github.com/gofiber/fiber/v2"
)

const (
	healthPath  = "/health"
	metricsPath = "/metrics"
)

// NewRouter builds the Fiber app with the middleware chain and the route table.
func NewRouter(lg log.Logger, tl *opentelemetry.Telemetry, metrics *http.Metrics, sh *StatusHandler, uh *UserHandler) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName:               "docker-api",
		DisableStartupMessage: true,
		ErrorHandler:          http.FiberErrorHandler,
	})

	f.Use(http.WithHTTPLogging(http.WithCustomLogger(lg), http.WithSkipPaths(healthPath, metricsPath)))
	f.Use(http.WithRecover(lg))
	f.Use(http.WithTelemetry(tl.Tracer(), healthPath, metricsPath))
	f.Use(metrics.WithMetrics(metricsPath))
	f.Use(http.WithCORS())

	f.Get("/", sh.Welcome)

	f.Get("/api/users", uh.GetAllUsers)
	f.Post("/api/users", uh.CreateUser)

	f.Get(healthPath, sh.Health)
	f.Get(metricsPath, metrics.Handler())

	return f
}
