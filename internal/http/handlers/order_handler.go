package handlers

import (
	"errors"
	"net/url"

	"redheart/internal/domain"
	applog "redheart/internal/log"
	"redheart/internal/services"
	"redheart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const msgOrderBusy = "Another status update is in progress."

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /admin/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		if wantsJSON(c) {
			return c.Status(fiber.StatusBadGateway).JSON(domain.FailedState[[]domain.Order](services.MsgOrdersFetchFailed))
		}
		return fail(c, fiber.StatusBadGateway, services.MsgOrdersFetchFailed)
	}
	if wantsJSON(c) {
		return c.JSON(domain.LoadedState(orders))
	}
	return render(c, "orders", fiber.Map{
		"Orders":   orders,
		"Expand":   domain.ParseIDSet(c.Query("expand")),
		"Updating": h.Orders.Updating(),
	})
}

// POST /admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}
	status := c.FormValue("status")
	fields := map[string]any{"order_id": id, "status": status}

	res, err := h.Orders.UpdateStatus(c.UserContext(), actor(c), id, status, nil)
	if err != nil {
		code, msg := fiber.StatusInternalServerError, services.MsgOrderUpdateFailed
		if errors.Is(err, services.ErrBusy) {
			code, msg = fiber.StatusConflict, msgOrderBusy
		} else if m, ok := validate.Message(err); ok {
			code, msg = fiber.StatusBadRequest, m
		}
		applog.Info(c, "admin.orders.update.rejected", fields)
		if wantsJSON(c) {
			return c.Status(code).JSON(fiber.Map{"error": msg})
		}
		return fail(c, code, msg)
	}

	if res.MutateErr != nil {
		applog.Error(c, "admin.orders.update.fail", res.MutateErr, fields)
	} else {
		applog.Audit(c, "admin.orders.update", fields)
	}
	if wantsJSON(c) {
		code := fiber.StatusOK
		if res.MutateErr != nil {
			code = fiber.StatusBadGateway
		}
		return c.Status(code).JSON(res)
	}
	if res.MutateErr != nil {
		setFlash(c, "error", res.Message)
	} else {
		setFlash(c, "ok", "Order "+id+" is now "+status)
	}
	back := "/admin/orders"
	if exp := c.FormValue("expand"); exp != "" {
		back += "?expand=" + url.QueryEscape(exp)
	}
	return c.Redirect(back)
}
