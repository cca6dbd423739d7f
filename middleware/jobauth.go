package middleware

import (
	"crypto/subtle"

	"shuttle-tracker/types"

	"github.com/gofiber/fiber/v2"
)

// RequireJobToken gates the manual job-trigger endpoints behind the
// configured bearer secret. An empty token disables the endpoints entirely
// instead of falling back to a well-known default.
func RequireJobToken(token string) fiber.Handler {
	expected := []byte("Bearer " + token)
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
				Success: false,
				Error:   "job trigger token is not configured",
			})
		}

		authHeader := c.Get("Authorization")
		if subtle.ConstantTimeCompare([]byte(authHeader), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Error:   "Unauthorized",
			})
		}

		return c.Next()
	}
}
