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

const (
	tabQuestions   = "questions"
	tabSubmissions = "submissions"
	msgDeleteBusy  = "Another delete is in progress."
)

type QuestionHandler struct {
	Questions *services.QuestionService
}

// draftRow is one editable row of the add-questions form.
type draftRow struct {
	Question string
	Type     string
}

func drafts(texts, types []string) []draftRow {
	rows := make([]draftRow, 0, len(texts))
	for i, t := range texts {
		r := draftRow{Question: t}
		if i < len(types) {
			r.Type = types[i]
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		rows = append(rows, draftRow{Type: string(domain.QuestionInput)})
	}
	return rows
}

// GET /admin/questions
func (h *QuestionHandler) Show(c *fiber.Ctx) error {
	return h.show(c, fiber.StatusOK, c.Query("tab"), fiber.Map{})
}

// show loads only the requested tab; submissions stay idle until asked for.
func (h *QuestionHandler) show(c *fiber.Ctx, status int, tab string, data fiber.Map) error {
	ctx := c.UserContext()
	var (
		questions   domain.ViewState[[]domain.Question]
		submissions domain.ViewState[[]domain.Submission]
	)
	if tab == tabSubmissions {
		subs, err := h.Questions.Submissions(ctx)
		if err != nil {
			applog.Error(c, "admin.submissions.list.fail", err, nil)
			submissions = domain.FailedState[[]domain.Submission](services.MsgSubmissionsLoadFailed)
		} else {
			submissions = domain.LoadedState(subs)
		}
	} else {
		tab = tabQuestions
		qs, err := h.Questions.List(ctx)
		if err != nil {
			applog.Error(c, "admin.questions.list.fail", err, nil)
			questions = domain.FailedState[[]domain.Question](services.MsgQuestionsLoadFailed)
		} else {
			questions = domain.LoadedState(qs)
		}
	}
	if _, ok := data["Rows"]; !ok {
		data["Rows"] = drafts(nil, nil)
	}
	data["Tab"] = tab
	data["Questions"] = questions
	data["Submissions"] = submissions
	data["Deleting"] = h.Questions.Delete.Held()
	c.Status(status)
	return render(c, "questions", data)
}

// formValues reads a repeated form field from either form encoding.
func formValues(c *fiber.Ctx, key string) []string {
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		return mf.Value[key]
	}
	var out []string
	for _, v := range c.Context().PostArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}

// POST /admin/questions
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	texts := formValues(c, "question")
	types := formValues(c, "type")

	n, err := h.Questions.Create(c.UserContext(), actor(c), texts, types)
	if err != nil {
		data := fiber.Map{"Rows": drafts(texts, types)}
		if msg, ok := validate.Message(err); ok {
			data["Error"] = msg
			return h.show(c, fiber.StatusBadRequest, tabQuestions, data)
		}
		applog.Error(c, "admin.questions.create.fail", err, map[string]any{"rows": len(texts)})
		data["Error"] = backend.MessageOr(err, services.MsgQuestionsCreateFailed)
		return h.show(c, fiber.StatusBadGateway, tabQuestions, data)
	}
	applog.Audit(c, "admin.questions.create", map[string]any{"count": n})
	setFlash(c, "ok", "Questions added")
	return c.Redirect("/admin/questions")
}

// POST /admin/questions/:id/delete
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid question id")
	}
	err := h.Questions.Remove(c.UserContext(), actor(c), id)
	switch {
	case errors.Is(err, services.ErrBusy):
		return fail(c, fiber.StatusConflict, msgDeleteBusy)
	case err != nil:
		applog.Error(c, "admin.questions.delete.fail", err, map[string]any{"question_id": id})
		setFlash(c, "error", backend.MessageOr(err, services.MsgQuestionDeleteFailed))
	default:
		applog.Audit(c, "admin.questions.delete", map[string]any{"question_id": id})
		setFlash(c, "ok", "Question deleted")
	}
	return c.Redirect("/admin/questions")
}
