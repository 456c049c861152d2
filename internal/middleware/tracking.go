package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TrackingCookieName is the persistent visitor cookie appended to responses.
const TrackingCookieName = "awraamba_tracker"

// Tracking appends a persistent tracking cookie to the response when the
// request did not carry one.
func Tracking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Cookies(TrackingCookieName) == "" {
			c.Cookie(&fiber.Cookie{
				Name:     TrackingCookieName,
				Value:    uuid.NewString(),
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return err
	}
}
