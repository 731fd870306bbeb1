package errors

import (
	"errors"

	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const internalServerErrorMessage = "Internal Server Error"

// NewFiberErrorHandler renders every error returned by a handler as {"message": ...}.
// AppErrors keep their status and message, *fiber.Error keeps its code, and anything
// else is logged and reported as a bare 500.
func NewFiberErrorHandler(log logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	log = log.WithComponent("http")

	return func(c *fiber.Ctx, err error) error {
		var appErr *AppError
		if errors.As(err, &appErr) {
			status := appErr.HTTPCode
			if status == 0 {
				status = fiber.StatusInternalServerError
			}
			message := appErr.Message
			if status >= fiber.StatusInternalServerError {
				log.WithContext(c.UserContext()).Errorf("%s %s: %v", c.Method(), c.Path(), err)
				if appErr.Type == ErrorTypeInternal || appErr.Type == ErrorTypeInfrastructure {
					message = internalServerErrorMessage
				}
			}
			return c.Status(status).JSON(fiber.Map{"message": message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.WithContext(c.UserContext()).Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": internalServerErrorMessage})
	}
}
