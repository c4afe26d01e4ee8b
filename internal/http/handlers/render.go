package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"redheart/internal/domain"
)

const layout = "layouts/main"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := session(c); s != nil {
		data["Session"] = s
	}
	if _, ok := data["Title"]; !ok {
		if t, ok := c.Locals("title").(string); ok {
			data["Title"] = t
		}
	}
	if _, ok := data["Flash"]; !ok {
		if f, ok := popFlash(c); ok {
			data["Flash"] = f
		}
	}
	data["Path"] = c.Path()
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data, layout)
}

// fail renders the full-screen error view.
func fail(c *fiber.Ctx, status int, msg string) error {
	c.Status(status)
	return render(c, "notfound", fiber.Map{"Message": msg})
}

func session(c *fiber.Ctx) *domain.Session {
	s, _ := c.Locals("session").(*domain.Session)
	return s
}

// actor names the operator in audit events.
func actor(c *fiber.Ctx) string {
	if s := session(c); s != nil {
		return s.Email
	}
	return ""
}

func sessionID(c *fiber.Ctx) string {
	if s := session(c); s != nil {
		return s.ID
	}
	return ""
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
