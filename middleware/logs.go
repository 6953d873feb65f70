package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"Cadence/Models"
)

// RequestLogger logs method, path, status, latency and the acting user for
// every request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)

		var userStr string
		if user, ok := c.Locals("user").(Models.User); ok {
			userStr = fmt.Sprintf(" user:%d(%s)", user.ID, user.Name)
		}

		log.Printf(
			"[%s] %s %s %d %s %s%s",
			start.Format("2006-01-02 15:04:05"),
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			latency,
			c.IP(),
			userStr,
		)

		return err
	}
}
