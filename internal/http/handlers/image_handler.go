package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"redheart/internal/domain"
	applog "redheart/internal/log"
	"redheart/internal/services"
	"redheart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const recentExports = 5

type ImageHandler struct {
	Images *services.ImageService
}

// imagesPage renders the upload screen. A fresh upload id is minted per render
// so the progress poll can find this page's next upload.
func (h *ImageHandler) imagesPage(c *fiber.Ctx, status int, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	set, err := h.Images.Current(sessionID(c))
	if err != nil {
		applog.Error(c, "admin.images.slots.fail", err, nil)
		set = domain.NewSlotSet("")
	}
	exports, err := h.Images.RecentExports(recentExports)
	if err != nil {
		applog.Error(c, "admin.images.exports.fail", err, nil)
	}
	if _, ok := data["ProductID"]; !ok {
		data["ProductID"] = set.ProductID
	}
	data["Set"] = set
	data["Slots"] = set.Views()
	data["Completed"] = set.Completed()
	data["Exports"] = exports
	data["UploadID"] = uuid.NewString()
	data["SlotNames"] = domain.Slots
	c.Status(status)
	return render(c, "images", data)
}

// GET /admin/images
func (h *ImageHandler) Page(c *fiber.Ctx) error {
	return h.imagesPage(c, fiber.StatusOK, nil)
}

// POST /admin/images/upload
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	in := services.ImageUpload{
		ProductID: c.FormValue("product_id"),
		Slot:      c.FormValue("slot"),
		UploadID:  c.FormValue("upload_id"),
	}
	form := fiber.Map{"ProductID": in.ProductID, "Slot": in.Slot}
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			applog.Error(c, "admin.images.open.fail", err, nil)
			return h.uploadError(c, fiber.StatusBadRequest, form, services.MsgFillRequired)
		}
		defer f.Close()
		in.File = &services.ImageFile{
			Filename:    fh.Filename,
			ContentType: contentType(fh, f),
			Size:        fh.Size,
			Body:        f,
		}
	}

	url, set, err := h.Images.Upload(c.UserContext(), actor(c), sessionID(c), in)
	fields := map[string]any{"product_id": in.ProductID, "slot": in.Slot}
	switch {
	case errors.Is(err, services.ErrBusy):
		return h.uploadError(c, fiber.StatusConflict, form, services.MsgImageUploadBusy)
	case err != nil:
		if msg, ok := validate.Message(err); ok {
			applog.Info(c, "admin.images.upload.invalid", map[string]any{"product_id": in.ProductID, "reason": msg})
			return h.uploadError(c, fiber.StatusBadRequest, form, msg)
		}
		applog.Error(c, "admin.images.upload.fail", err, fields)
		return h.uploadError(c, fiber.StatusBadGateway, form, services.MsgImageUploadFail)
	}
	fields["url"] = url
	applog.Audit(c, "admin.images.upload", fields)
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"url": url, "product_id": set.ProductID, "slots": set.Views()})
	}
	form["URL"] = url
	return h.imagesPage(c, fiber.StatusOK, form)
}

func (h *ImageHandler) uploadError(c *fiber.Ctx, status int, form fiber.Map, msg string) error {
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	form["Error"] = msg
	return h.imagesPage(c, status, form)
}

// contentType is the part's declared type, or a sniff of its first bytes when
// the browser sent none.
func contentType(fh *multipart.FileHeader, f multipart.File) string {
	if ct := fh.Header.Get(fiber.HeaderContentType); ct != "" && ct != fiber.MIMEOctetStream {
		return ct
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	_, _ = f.Seek(0, io.SeekStart)
	return http.DetectContentType(head[:n])
}

// GET /admin/images/progress/:id
func (h *ImageHandler) Progress(c *fiber.Ctx) error {
	p, ok := h.Images.ProgressOf(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown upload"})
	}
	return c.JSON(p)
}

// POST /admin/images/reset
func (h *ImageHandler) Reset(c *fiber.Ctx) error {
	if err := h.Images.Reset(sessionID(c)); err != nil {
		applog.Error(c, "admin.images.reset.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not reset the image slots")
	}
	applog.Info(c, "admin.images.reset", nil)
	return c.Redirect("/admin/images")
}

// GET /admin/images/export
func (h *ImageHandler) Export(c *fiber.Ctx) error {
	pid := c.Query("product_id")
	name, body, err := h.Images.Export(sessionID(c), pid)
	if err != nil {
		form := fiber.Map{}
		if pid != "" {
			form["ProductID"] = pid
		}
		if msg, ok := validate.Message(err); ok {
			return h.uploadError(c, fiber.StatusBadRequest, form, msg)
		}
		applog.Error(c, "admin.images.export.fail", err, map[string]any{"product_id": pid})
		return h.uploadError(c, fiber.StatusInternalServerError, form, services.MsgExportFailed)
	}
	applog.Audit(c, "admin.images.export", map[string]any{"product_id": pid, "filename": name})
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(body)
}
