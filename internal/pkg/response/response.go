package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API error response
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success sends a 200 response with message and body fields at the top level
func Success(c *fiber.Ctx, message string, body fiber.Map) error {
	return send(c, fiber.StatusOK, message, body)
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, body fiber.Map) error {
	return send(c, fiber.StatusCreated, message, body)
}

func send(c *fiber.Ctx, status int, message string, body fiber.Map) error {
	out := fiber.Map{"success": true}
	if message != "" {
		out["message"] = message
	}
	for k, v := range body {
		out[k] = v
	}
	return c.Status(status).JSON(out)
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
	})
}

// ValidationFailed sends a 400 response listing every rejected field
func ValidationFailed(c *fiber.Ctx, errs []FieldError) error {
	message := "Validation failed"
	if len(errs) > 0 {
		message = errs[0].Message
	}
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
