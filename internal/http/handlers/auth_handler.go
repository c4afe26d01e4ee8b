package handlers

import (
	"time"

	"redheart/internal/log"
	"redheart/internal/services"
	"redheart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) setSID(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  expires,
	})
}

func csrfToken(c *fiber.Ctx) string {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return tok
}

// loginPage is the only view rendered without the console layout.
func loginPage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("login", fiber.Map{"Err": msg, "CSRFToken": csrfToken(c), "Title": "Sign in"})
}

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if s, err := h.Auth.Session(c.Cookies("sid")); err == nil && s != nil {
		return c.Redirect("/admin")
	}
	return loginPage(c, fiber.StatusOK, "")
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return loginPage(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if pass == "" {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "empty_password"})
		return loginPage(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	s, err := h.Auth.Login(email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return loginPage(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	h.setSID(c, s.ID, time.Time{})
	c.Locals("user_id", s.UserID)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	h.setSID(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
