package handlers

import (
	"strings"

	"redheart/internal/backend"
	"redheart/internal/domain"
	applog "redheart/internal/log"
	"redheart/internal/services"
	"redheart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Pages *services.PageService
}

func pagesView(c *fiber.Ctx, status int, pages []domain.PageContent, selected, htmlCode string, extra fiber.Map) error {
	data := fiber.Map{
		"Pages":    pages,
		"Selected": selected,
		"HTML":     htmlCode,
	}
	for k, v := range extra {
		data[k] = v
	}
	c.Status(status)
	return render(c, "pages", data)
}

// GET /admin/pages
func (h *PageHandler) Show(c *fiber.Ctx) error {
	pages, err := h.Pages.List(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.pages.list.fail", err, nil)
		return fail(c, fiber.StatusBadGateway, services.MsgPagesLoadFailed)
	}
	selected := strings.TrimSpace(c.Query("page"))
	html := ""
	if p, ok := domain.FindPage(pages, selected); ok {
		html = p.HTMLCode
	}
	return pagesView(c, fiber.StatusOK, pages, selected, html, nil)
}

// POST /admin/pages
func (h *PageHandler) Save(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("new_page"))
	if name == "" {
		name = strings.TrimSpace(c.FormValue("page"))
	}
	htmlCode := c.FormValue("htmlCode")

	res, err := h.Pages.Save(c.UserContext(), actor(c), name, htmlCode)
	if err != nil {
		msg, _ := validate.Message(err)
		pages, lerr := h.Pages.List(c.UserContext())
		if lerr != nil {
			applog.Error(c, "admin.pages.list.fail", lerr, nil)
		}
		return pagesView(c, fiber.StatusBadRequest, pages, name, htmlCode, fiber.Map{"Error": msg})
	}

	extra := fiber.Map{}
	status := fiber.StatusOK
	if res.MutateErr != nil {
		applog.Error(c, "admin.pages.save.fail", res.MutateErr, map[string]any{"page": name})
		extra["Error"] = backend.MessageOr(res.MutateErr, services.MsgPageSaveFailed)
		status = fiber.StatusBadGateway
	} else {
		applog.Audit(c, "admin.pages.save", map[string]any{"page": name, "bytes": len(htmlCode)})
		extra["Message"] = res.Message
	}
	if res.Final.IsFailed() {
		extra["ListError"] = res.Final.Err
	}
	return pagesView(c, status, res.Final.Data, name, htmlCode, extra)
}
