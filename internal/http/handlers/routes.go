package handlers

import "github.com/gofiber/fiber/v2"

// Route is one entry of the console's route table.
type Route struct {
	Method    string
	Path      string
	Protected bool
	Title     string
	// Middleware runs after the session guard and before Handler.
	Middleware []fiber.Handler
	Handler    fiber.Handler
}

// Mount registers routes on r; protected routes get guard first.
func Mount(r fiber.Router, routes []Route, guard fiber.Handler) {
	for _, rt := range routes {
		hs := make([]fiber.Handler, 0, len(rt.Middleware)+3)
		if rt.Title != "" {
			hs = append(hs, title(rt.Title))
		}
		if rt.Protected {
			hs = append(hs, guard)
		}
		hs = append(hs, rt.Middleware...)
		hs = append(hs, rt.Handler)
		r.Add(rt.Method, rt.Path, hs...)
	}
}

func title(t string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("title", t)
		return c.Next()
	}
}
