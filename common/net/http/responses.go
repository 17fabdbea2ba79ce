package http

import "github.com/gofiber/fiber/v2"

// writeResponseError renders title and message as a ResponseError JSON body
// at the given status, the shape every helper below shares. The body's Code
// field carries the HTTP status; the code argument is not written.
func writeResponseError(c *fiber.Ctx, status int, code, title, message string) error {
	return c.Status(status).JSON(ResponseError{Code: status, Title: title, Message: message})
}

// NotFound writes a 404 response.
func NotFound(c *fiber.Ctx, code, title, message string) error {
	return writeResponseError(c, fiber.StatusNotFound, code, title, message)
}

// Conflict writes a 409 response.
func Conflict(c *fiber.Ctx, code, title, message string) error {
	return writeResponseError(c, fiber.StatusConflict, code, title, message)
}

// BadRequest writes a 400 response. Passing a ValidationKnownFieldsError (or
// *ValidationKnownFieldsError) renders its field-level detail instead of the
// flat ResponseError shape.
func BadRequest(c *fiber.Ctx, v any) error {
	switch e := v.(type) {
	case ValidationKnownFieldsError:
		return c.Status(fiber.StatusBadRequest).JSON(e)
	case *ValidationKnownFieldsError:
		return c.Status(fiber.StatusBadRequest).JSON(e)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(v)
	}
}

// UnprocessableEntity writes a 422 response.
func UnprocessableEntity(c *fiber.Ctx, code, title, message string) error {
	return writeResponseError(c, fiber.StatusUnprocessableEntity, code, title, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *fiber.Ctx, code, title, message string) error {
	return writeResponseError(c, fiber.StatusUnauthorized, code, title, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *fiber.Ctx, code, title, message string) error {
	return writeResponseError(c, fiber.StatusForbidden, code, title, message)
}

// InternalServerError writes a 500 response.
func InternalServerError(c *fiber.Ctx, code, title, message string) error {
	return writeResponseError(c, fiber.StatusInternalServerError, code, title, message)
}

// Created writes a 201 response with the given body.
func Created(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}

// OK writes a 200 response with the given body.
func OK(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// NoContent writes an empty 204 response.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// JSONResponseError writes a ResponseError using its own Code as the status.
func JSONResponseError(c *fiber.Ctx, r ResponseError) error {
	status := r.Code
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(r)
}
