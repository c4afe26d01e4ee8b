package handlers

import (
	applog "redheart/internal/log"
	"redheart/internal/services"

	"github.com/gofiber/fiber/v2"
)

const msgDashboardFailed = "Failed to load dashboard data."

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

// GET /admin
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	sum, err := h.Dashboard.Load(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.dashboard.load.fail", err, nil)
		return fail(c, fiber.StatusBadGateway, msgDashboardFailed)
	}
	return render(c, "dashboard", fiber.Map{"Summary": sum})
}
