package handlers

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"

	"redheart/internal/backend"
	"redheart/internal/domain"
	applog "redheart/internal/log"
	"redheart/internal/services"
	"redheart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
}

// GET /admin/products
func (h *ProductHandler) Browse(c *fiber.Ctx) error {
	q := h.Products.Query(c.Query("q"), c.QueryInt("page", 1))
	products, err := h.Products.Browse(c.UserContext(), q)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, map[string]any{"q": q.Search, "page": q.Page})
		return fail(c, fiber.StatusBadGateway, services.MsgProductsLoadFailed)
	}
	return render(c, "products", fiber.Map{
		"Products": products,
		"Query":    q,
		"HasPrev":  q.Page > 1,
		"HasNext":  len(products) >= q.Limit,
	})
}

// POST /admin/products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	id, ok := validate.ProductID(raw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	page, _ := strconv.Atoi(c.FormValue("page"))
	q := h.Products.Query(c.FormValue("q"), page)

	res := h.Products.Delete(c.UserContext(), actor(c), q, id, nil)
	if res.MutateErr != nil {
		applog.Error(c, "admin.products.delete.fail", res.MutateErr, map[string]any{"product_id": id})
		setFlash(c, "error", backend.MessageOr(res.MutateErr, res.Message))
	} else {
		applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
		setFlash(c, "ok", "Deleted product "+id)
	}
	return c.Redirect("/admin/products?" + browseQuery(q))
}

func browseQuery(q domain.ProductQuery) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	v.Set("page", strconv.Itoa(q.Page))
	return v.Encode()
}

type csvMode struct {
	name    string
	action  string
	heading string
}

var (
	modeImport = csvMode{name: "import", action: "/admin/products/import", heading: "Add Products"}
	modeUpdate = csvMode{name: "update", action: "/admin/products/update", heading: "Update Products"}
)

func csvPage(c *fiber.Ctx, status int, m csvMode, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Mode"] = m.name
	data["Action"] = m.action
	data["Heading"] = m.heading
	c.Status(status)
	return render(c, "products_import", data)
}

// GET /admin/products/import
func (h *ProductHandler) ImportForm(c *fiber.Ctx) error {
	return csvPage(c, fiber.StatusOK, modeImport, nil)
}

// GET /admin/products/update
func (h *ProductHandler) UpdateForm(c *fiber.Ctx) error {
	return csvPage(c, fiber.StatusOK, modeUpdate, nil)
}

// POST /admin/products/import
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	return h.upload(c, modeImport, h.Products.Import)
}

// POST /admin/products/update
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	return h.upload(c, modeUpdate, h.Products.Update)
}

type csvSender func(ctx context.Context, actor, filename string, r io.Reader) (domain.ImportResult, error)

func (h *ProductHandler) upload(c *fiber.Ctx, m csvMode, send csvSender) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return csvPage(c, fiber.StatusBadRequest, m, fiber.Map{"Error": services.MsgSelectCSV})
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "admin.products."+m.name+".open.fail", err, nil)
		return csvPage(c, fiber.StatusBadRequest, m, fiber.Map{"Error": services.MsgSelectCSV})
	}
	defer f.Close()

	res, err := send(c.UserContext(), actor(c), fh.Filename, f)
	fields := map[string]any{"filename": fh.Filename, "size": fh.Size}
	switch {
	case errors.Is(err, services.ErrBusy):
		return csvPage(c, fiber.StatusConflict, m, fiber.Map{"Error": services.MsgUploadInProgress})
	case err != nil:
		if msg, ok := validate.Message(err); ok {
			return csvPage(c, fiber.StatusBadRequest, m, fiber.Map{"Error": msg})
		}
		applog.Error(c, "admin.products."+m.name+".fail", err, fields)
		return csvPage(c, fiber.StatusBadGateway, m, fiber.Map{"Error": backend.MessageOr(err, services.MsgUploadFailed)})
	}
	fields["inserted"] = res.InsertedCount
	fields["failed"] = res.FailedCount
	applog.Audit(c, "admin.products."+m.name, fields)
	return csvPage(c, fiber.StatusOK, m, fiber.Map{"Result": res, "Message": res.Summary()})
}
