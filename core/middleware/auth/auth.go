package auth

import "github.com/gofiber/fiber/v2"

// Config holds configuration for the API key middleware.
type Config struct {
	// ApiKey is the expected key. When empty, the middleware lets every
	// request through (open instance).
	ApiKey string
}

// New creates a middleware that validates the X-API-Key header.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		if c.Get("X-API-Key") != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
