package http

import (
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/runtime"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// WithRecover turns handler panics into errors for FiberErrorHandler and logs
// the panic with its stack through the runtime package.
func WithRecover(logger log.Logger) fiber.Handler {
	if logger == nil {
		logger = log.NewNop()
	}

	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, panicValue any) {
			runtime.HandlePanicValue(c.UserContext(), logger, panicValue, "http", c.Method()+" "+c.Path())
		},
	})
}
