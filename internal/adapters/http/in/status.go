package in

import (
	"time"

	"github.com/LerianStudio/docker-api/pkg"
	"github.com/LerianStudio/docker-api/pkg/mmodel"
	"github.com/LerianStudio/docker-api/pkg/net/http"
	"github.com/gofiber/fiber/v2"
)

// WelcomeMessage is the greeting returned by the root endpoint.
const WelcomeMessage = "Welcome to Docker API"

// HealthyStatus is the status reported by a serving process.
const HealthyStatus = "healthy"

// ProcessInfo describes the running process to the status endpoints.
type ProcessInfo interface {
	Environment() string
	Version() string
	Uptime() time.Duration
}

// StatusHandler serves the welcome and health endpoints.
type StatusHandler struct {
	Process ProcessInfo
	Now     func() time.Time
}

func (h *StatusHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}

	return h.Now()
}

// Welcome returns the service greeting, version and environment.
func (h *StatusHandler) Welcome(c *fiber.Ctx) error {
	return http.OK(c, mmodel.Welcome{
		Message:     WelcomeMessage,
		Version:     h.Process.Version(),
		Environment: h.Process.Environment(),
	})
}

// Health reports the process as healthy with the current time and its uptime in seconds.
func (h *StatusHandler) Health(c *fiber.Ctx) error {
	return http.OK(c, mmodel.Health{
		Status:    HealthyStatus,
		Timestamp: pkg.FormatISO8601(h.now()),
		Uptime:    h.Process.Uptime().Seconds(),
	})
}
