package handlers

import (
	"errors"

	applog "redheart/internal/log"

	"github.com/gofiber/fiber/v2"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// ErrorHandler logs the error and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgSomethingWrong
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		switch code {
		case fiber.StatusNotFound:
			msg = "Page not found"
		case fiber.StatusRequestEntityTooLarge:
			msg = "The upload is too large."
		}
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}, layout); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// NotFound is the catch-all for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"}, layout)
}
