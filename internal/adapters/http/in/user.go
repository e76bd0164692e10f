package in

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/LerianStudio/docker-api/internal/services"
	"github.com/LerianStudio/docker-api/pkg"
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/mmodel"
	"github.com/LerianStudio/docker-api/pkg/net/http"
	libOpentelemetry "github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the user endpoints.
type UserHandler struct {
	UseCase *services.UseCase
}

// GetAllUsers returns the fixed user list.
func (handler *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, _ := pkg.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_all_users")
	defer span.End()

	return http.OK(c, mmodel.Users{Users: handler.UseCase.ListUsers(ctx)})
}

// CreateUser echoes the name and email of the request body as a new user.
//
// A JSON object body is echoed field by field. An empty body, a JSON array
// or a non-JSON content type yields a user with neither field. Anything else
// sent as JSON is a 400.
func (handler *UserHandler) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _ := pkg.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_user")
	defer span.End()

	input := new(mmodel.CreateUserInput)

	if err := parseUserInput(c, input); err != nil {
		libOpentelemetry.HandleSpanError(span, "Failed to parse request body", err)
		logger.Log(ctx, log.LevelWarn, "Failed to parse request body", log.Err(err))

		return err
	}

	return http.Created(c, handler.UseCase.CreateUser(ctx, input))
}

// parseUserInput reads the exact "name" and "email" keys of a JSON object
// body. Other spellings such as "Name" are ignored.
func parseUserInput(c *fiber.Ctx, input *mmodel.CreateUserInput) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 || !isJSONContent(c) {
		return nil
	}

	switch body[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := c.App().Config().JSONDecoder(body, &fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body: "+err.Error())
		}

		input.Name = fields["name"]
		input.Email = fields["email"]
	case '[':
		if !json.Valid(body) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body: expected an object")
	}

	return nil
}

// isJSONContent matches application/json regardless of case and parameters.
func isJSONContent(c *fiber.Ctx) bool {
	mediaType, _, _ := strings.Cut(c.Get(fiber.HeaderContentType), ";")

	return strings.EqualFold(strings.TrimSpace(mediaType), fiber.MIMEApplicationJSON)
}
