package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-assessment-intake/internal/observability"
	"github.com/noah-isme/gema-assessment-intake/internal/utils"
)

// AppConfig returns the fiber configuration the intake server runs with. The
// body limit makes fasthttp refuse oversized requests from the declared
// Content-Length before reading the body.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		ServerHeader: appName,
		BodyLimit:    MaxAssessmentBodyBytes,
		ErrorHandler: ErrorHandler,
	}
}

// ErrorHandler renders errors that escape handlers, including the ones raised by
// the server before routing, as the JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
		observability.AssessmentSubmissions().WithLabelValues(observability.OutcomeRejected).Inc()
		return utils.SendError(c, fiber.StatusBadRequest, msgPayloadTooLarge)
	}
	return utils.SendError(c, fiberErr.Code, fiberErr.Message)
}
