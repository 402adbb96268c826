// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"

	"rag-admin-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerMiddleware turns errors bubbled out of controllers into the
// standard envelope. Sentinel classes map to their HTTP status; anything
// unrecognized is a 500 with the message swallowed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, apperrors.ErrInvalidInput):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, apperrors.ErrUnauthorized):
			status = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, apperrors.ErrForbidden):
			status = fiber.StatusForbidden
			message = err.Error()
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperrors.ErrConflict):
			status = fiber.StatusConflict
			message = err.Error()
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
