package serverutils

import (
	"errors"

	"chatbot-flow-be/pkg/engine"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps engine errors onto HTTP statuses so
// controllers can just `return err`.
//
// NotFound family -> 404, invalid state -> 409, configuration errors -> 422,
// loop detection -> 500 (it is an authored-graph defect the caller cannot
// fix by retrying), everything else -> 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrGraphNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, engine.ErrChatAlreadyEnded), errors.Is(err, engine.ErrInvalidState):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, engine.ErrStartNodeMissing),
			errors.Is(err, engine.ErrEmptyWorkflow),
			errors.Is(err, engine.ErrInvalidNodeConfig):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
		}
	}
}
