package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "redheart/internal/log"
)

const (
	GlobalMax   = 60
	LoginMax    = 5
	ProgressMax = 10

	msgTooManyLogins = "Too many attempts. Please try again later."
)

// GlobalLimiter throttles every request per IP except assets and progress polls,
// which the progress route limits on its own.
func GlobalLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        GlobalMax,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/") ||
				strings.HasPrefix(p, "/admin/images/progress/")
		},
	})
}

// LoginLimiter guards POST /login.
func LoginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        LoginMax,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{
				"Err": msgTooManyLogins, "CSRFToken": csrfToken(c), "Title": "Sign in",
			})
		},
	})
}

// ProgressLimiter caps upload progress polling.
func ProgressLimiter() fiber.Handler {
	return limiter.New(limiter.Config{Max: ProgressMax, Expiration: time.Second})
}
