package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body returned for every rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSON sends data with the provided HTTP status code.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(data)
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
