package response

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message})
}

func SuccessWithData(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// ValidationError returns field-level errors alongside the failure message.
func ValidationError(c *fiber.Ctx, message string, errs interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{Success: false, Message: message, Data: errs})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{Success: false, Message: message})
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Envelope{Success: false, Message: message})
}

func Forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(Envelope{Success: false, Message: message})
}

func NotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(Envelope{Success: false, Message: message})
}

func Conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(Envelope{Success: false, Message: message})
}

func Error(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{Success: false, Message: message})
}

func BadGateway(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadGateway).JSON(Envelope{Success: false, Message: message})
}
