package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(ctx *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return ctx.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorHandlerMiddleware is installed as the fiber ErrorHandler. AppError
// keeps its status; fiber.Error keeps its code; anything else is a 500
// with the detail kept out of the response body.
func ErrorHandlerMiddleware(ctx *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ctx.Status(appErr.StatusCode).JSON(Response{
			Success: false,
			Message: appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(Response{
			Success: false,
			Message: fiberErr.Message,
		})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(Response{
		Success: false,
		Message: "Internal server error",
	})
}
