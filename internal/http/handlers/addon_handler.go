package handlers

import (
	"errors"

	"redheart/internal/backend"
	"redheart/internal/domain"
	applog "redheart/internal/log"
	"redheart/internal/services"
	"redheart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const msgAddOnBusy = "Another add-on change is in progress."

type AddOnHandler struct {
	AddOns *services.AddOnService
}

// GET /admin/addons
func (h *AddOnHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	list, err := h.AddOns.List(c.UserContext(), category)
	if err != nil {
		applog.Error(c, "admin.addons.list.fail", err, map[string]any{"category": category})
		return fail(c, fiber.StatusBadGateway, services.MsgAddOnsLoadFailed)
	}
	return render(c, "addons", fiber.Map{
		"AddOns":   list,
		"Category": category,
		"Deleting": h.AddOns.Delete.InFlight(),
	})
}

func formPage(c *fiber.Ctx, status int, id string, f domain.AddOnForm, errMsg string) error {
	action, heading := "/admin/addons", "Add AddOn"
	if id != "" {
		action, heading = "/admin/addons/"+id, "Edit AddOn"
	}
	c.Status(status)
	return render(c, "addon_form", fiber.Map{
		"ID":      id,
		"Form":    f,
		"Action":  action,
		"Heading": heading,
		"Error":   errMsg,
	})
}

// GET /admin/addons/new
func (h *AddOnHandler) New(c *fiber.Ctx) error {
	return formPage(c, fiber.StatusOK, "", domain.BlankAddOnForm(), "")
}

// GET /admin/addons/:id/edit
func (h *AddOnHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid add-on id")
	}
	a, err := h.AddOns.Find(c.UserContext(), id)
	if errors.Is(err, services.ErrAddOnNotFound) {
		return fail(c, fiber.StatusNotFound, services.MsgAddOnNotFound)
	}
	if err != nil {
		applog.Error(c, "admin.addons.find.fail", err, map[string]any{"addon_id": id})
		return fail(c, fiber.StatusBadGateway, services.MsgAddOnsLoadFailed)
	}
	return formPage(c, fiber.StatusOK, id, a.Form(), "")
}

func readAddOnForm(c *fiber.Ctx) domain.AddOnForm {
	v := c.FormValue("addOn")
	return domain.AddOnForm{
		Image:         c.FormValue("image"),
		Category:      c.FormValue("category"),
		Name:          c.FormValue("name"),
		CostPrice:     c.FormValue("costPrice"),
		SellingPrice:  c.FormValue("sellingPrice"),
		OriginalPrice: c.FormValue("originalPrice"),
		AddOn:         v == "on" || v == "true",
	}
}

// POST /admin/addons
func (h *AddOnHandler) Create(c *fiber.Ctx) error {
	return h.save(c, "")
}

// POST /admin/addons/:id
func (h *AddOnHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid add-on id")
	}
	return h.save(c, id)
}

func (h *AddOnHandler) save(c *fiber.Ctx, id string) error {
	f := readAddOnForm(c)
	fields := map[string]any{"addon_id": id, "name": f.Name, "category": f.Category}
	err := h.AddOns.Save(c.UserContext(), actor(c), id, f)
	switch {
	case errors.Is(err, services.ErrBusy):
		return formPage(c, fiber.StatusConflict, id, f, msgAddOnBusy)
	case err != nil:
		if msg, ok := validate.Message(err); ok {
			return formPage(c, fiber.StatusBadRequest, id, f, msg)
		}
		applog.Error(c, "admin.addons.save.fail", err, fields)
		return formPage(c, fiber.StatusBadGateway, id, f, backend.MessageOr(err, services.MsgAddOnSaveFailed))
	}
	applog.Audit(c, "admin.addons.save", fields)
	if id == "" {
		setFlash(c, "ok", "AddOn created")
	} else {
		setFlash(c, "ok", "AddOn updated")
	}
	return c.Redirect("/admin/addons")
}

// POST /admin/addons/:id/delete
func (h *AddOnHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid add-on id")
	}
	err := h.AddOns.SoftDelete(c.UserContext(), actor(c), id)
	switch {
	case errors.Is(err, services.ErrBusy):
		return fail(c, fiber.StatusConflict, msgAddOnBusy)
	case err != nil:
		if msg, ok := validate.Message(err); ok {
			setFlash(c, "error", msg)
			break
		}
		applog.Error(c, "admin.addons.delete.fail", err, map[string]any{"addon_id": id})
		setFlash(c, "error", backend.MessageOr(err, services.MsgAddOnDeleteFailed))
	default:
		applog.Audit(c, "admin.addons.delete", map[string]any{"addon_id": id})
		setFlash(c, "ok", "AddOn deleted")
	}
	return c.Redirect("/admin/addons")
}
