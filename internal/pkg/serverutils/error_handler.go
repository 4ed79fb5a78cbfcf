package serverutils

import (
	"errors"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// NewErrorHandler renders every error escaping a handler as the wire shape
// {error, message?, code?}. Unexpected errors become an opaque 500; their
// detail is only echoed outside production.
func NewErrorHandler(log logger.ILogger, isProduction bool) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			body := errorBody{
				Error:   appErr.Message,
				Message: appErr.Detail,
				Code:    appErr.Code,
			}
			if errors.Is(appErr, apperror.ErrInternal) {
				log.Error("http", "internal error", map[string]interface{}{
					"path":   ctx.Path(),
					"method": ctx.Method(),
					"detail": appErr.Detail,
				})
				if isProduction {
					body.Message = ""
				}
			}
			return ctx.Status(appErr.Status()).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(errorBody{Error: fiberErr.Message})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		body := errorBody{Error: "internal server error"}
		if !isProduction {
			body.Message = err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
