package handlers

import (
	applog "redheart/internal/log"
	"redheart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireSession lets a request through only with a known sid cookie.
// Anything else goes to the login page.
func RequireSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		s, err := auth.Session(sid)
		if err != nil || s == nil {
			applog.Security(c, "access.denied.session", map[string]any{"reason": "unknown_sid"})
			return c.Redirect("/login")
		}
		c.Locals("session", s)
		c.Locals("user_id", s.UserID)
		return c.Next()
	}
}
