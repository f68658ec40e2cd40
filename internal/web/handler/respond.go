// Package handler holds the JSON response helpers shared by every route
// handler package.
package handler

import "github.com/gofiber/fiber/v2"

// Error writes a JSON error body with the given status code.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// NotFound writes the standard 404 JSON body.
func NotFound(c *fiber.Ctx) error {
	return Error(c, fiber.StatusNotFound, "not found")
}

// BadRequest writes the standard 400 JSON body.
func BadRequest(c *fiber.Ctx, msg string) error {
	return Error(c, fiber.StatusBadRequest, msg)
}

// Internal writes the standard 500 JSON body.
func Internal(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, "internal server error")
}
