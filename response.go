package accounts

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Response is the uniform JSON envelope every endpoint answers with.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Code:    status,
		Message: message,
		Data:    data,
	})
}

// NewErrorHandler builds the fiber error handler. Rich errors carry their
// own HTTP status; validation errors map to 400; anything else is a 500
// with a generic message so internals never leak to clients.
func NewErrorHandler(logger Logger, debug bool) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return func(c *fiber.Ctx, err error) error {
		var verr validation.Errors
		if errors.As(err, &verr) {
			return respond(c, fiber.StatusBadRequest, "Validation failed", verr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return respond(c, fiberErr.Code, fiberErr.Message, nil)
		}

		var richErr *goerrors.Error
		if !goerrors.As(err, &richErr) {
			richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
				WithCode(goerrors.CodeInternal)
		}

		status := richErr.Code
		if status == 0 {
			status = fiber.StatusInternalServerError
		}

		logger.Error("request failed",
			"status", status,
			"category", richErr.Category,
			"text_code", richErr.TextCode,
			"path", c.Path(),
		)

		if debug {
			logger.Debug("error detail", "error", print.MaybePrettyJSON(richErr))
		}

		message := richErr.Message
		if status >= fiber.StatusInternalServerError {
			message = "Internal server error"
		}

		return respond(c, status, message, nil)
	}
}
