// Package responses defines the JSON envelope every endpoint returns:
// {success, message, data} on success, {success, error} on failure.
package responses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abhinandan-jain01/nearmart/apperrors"
)

type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Fail maps the error's kind to an HTTP status. Internal errors hide their
// cause from the client.
func Fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.Status(status).JSON(Envelope{Success: false, Error: msg})
}

func FailStatus(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: message})
}
