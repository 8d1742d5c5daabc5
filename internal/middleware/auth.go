package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader carries the API token.
const TokenHeader = "x-token"

// Token middleware that rejects requests without the expected x-token header. An empty token
// disables the check.
func Token(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		got := c.Get(TokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
}
