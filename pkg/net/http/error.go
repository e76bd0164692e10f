package http

import (
	"errors"
	"net/http"

	cn "github.com/LerianStudio/docker-api/pkg/constants"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body of every error answered by the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Error allows ErrorResponse to satisfy the error interface.
func (e ErrorResponse) Error() string {
	return e.Message
}

// RespondError writes an ErrorResponse with the given status.
func RespondError(c *fiber.Ctx, status int, title, message string) error {
	return JSONResponse(c, status, ErrorResponse{
		Code:    status,
		Title:   title,
		Message: message,
	})
}

// RenderError writes err through the single error contract. Framework errors
// keep their status and message; anything else is a generic 500.
func RenderError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var responseErr ErrorResponse
	if errors.As(err, &responseErr) {
		status := responseErr.Code
		if status < http.StatusContinue || status > 599 {
			status = fiber.StatusInternalServerError
		}

		title := responseErr.Title
		if title == "" {
			title = cn.DefaultErrorTitle
		}

		message := responseErr.Message
		if message == "" {
			message = http.StatusText(status)
		}

		return RespondError(c, status, title, message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return RespondError(c, fiberErr.Code, cn.DefaultErrorTitle, fiberErr.Message)
	}

	return RespondError(c, fiber.StatusInternalServerError, cn.InternalErrorTitle, cn.DefaultInternalErrorMessage)
}
