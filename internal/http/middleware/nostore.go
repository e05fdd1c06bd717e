package middleware

import "github.com/gofiber/fiber/v2"

// NoStore marks responses as non-cacheable. Upload results and generated
// documents are produced per request and never exist on the server afterwards.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		c.Set(fiber.HeaderCacheControl, "no-store")
		return err
	}
}
