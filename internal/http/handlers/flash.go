package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

func setFlash(c *fiber.Ctx, kind, text string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + text),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func popFlash(c *fiber.Ctx) (Flash, bool) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return Flash{}, false
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return Flash{}, false
	}
	kind, text, ok := strings.Cut(v, "|")
	if !ok || text == "" {
		return Flash{}, false
	}
	return Flash{Kind: kind, Text: text}, true
}
