package api

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BearerAuth is the single inbound authorization gate: a fixed token in the
// Authorization header. The session-setting endpoint stays open so clients
// can log in; everything else requires the token.
func BearerAuth() fiber.Handler {
	token := os.Getenv("API_BEARER_TOKEN")
	if token == "" {
		token = "debugmate123"
	}
	expected := "Bearer " + token

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost && strings.HasSuffix(c.Path(), "/session") {
			return c.Next()
		}
		if c.Get(fiber.HeaderAuthorization) != expected {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"reply": "❌ Unauthorized",
			})
		}
		return c.Next()
	}
}
