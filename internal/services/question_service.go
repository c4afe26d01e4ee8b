package services

import (
	"context"
	"fmt"
	"strings"

	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/validate"
)

const (
	MsgNoQuestions           = "Add at least one question with text."
	MsgQuestionsCreateFailed = "Failed to add questions."
	MsgQuestionsLoadFailed   = "Failed to load questions."
	MsgSubmissionsLoadFailed = "Failed to load submissions."
	MsgQuestionDeleteFailed  = "Failed to delete question."
	MsgInvalidQuestionType   = "Invalid question type"
)

var (
	ErrNoQuestions  = &validate.Problem{Msg: MsgNoQuestions}
	ErrQuestionType = &validate.Problem{Msg: MsgInvalidQuestionType}
)

type QuestionBackend interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	CreateQuestions(ctx context.Context, qs []domain.NewQuestion) error
	DeleteQuestion(ctx context.Context, id string) error
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}

type QuestionService struct {
	API    QuestionBackend
	Delete *Busy
	Events events.Publisher
}

func NewQuestionService(api QuestionBackend, pub events.Publisher) *QuestionService {
	return &QuestionService{API: api, Delete: &Busy{}, Events: pub}
}

func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	return s.API.ListQuestions(ctx)
}

func (s *QuestionService) Submissions(ctx context.Context) ([]domain.Submission, error) {
	return s.API.ListSubmissions(ctx)
}

// Rows pairs the question[] and type[] form arrays, trims each text and drops
// blank rows. A type outside the closed set fails the whole batch.
func Rows(texts, types []string) ([]domain.NewQuestion, error) {
	out := make([]domain.NewQuestion, 0, len(texts))
	for i, raw := range texts {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		typ := ""
		if i < len(types) {
			typ = types[i]
		}
		qt, ok := validate.QuestionType(typ)
		if !ok {
			return nil, ErrQuestionType
		}
		out = append(out, domain.NewQuestion{Question: text, Type: qt})
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}

// Create sends every non-blank row in one batch.
func (s *QuestionService) Create(ctx context.Context, actor string, texts, types []string) (int, error) {
	rows, err := Rows(texts, types)
	if err != nil {
		return 0, err
	}
	if err := s.API.CreateQuestions(ctx, rows); err != nil {
		return 0, fmt.Errorf("create %d questions: %w", len(rows), err)
	}
	publish(ctx, s.Events, events.New(events.QuestionsCreated, "question", "", actor, map[string]any{"count": len(rows)}))
	return len(rows), nil
}

// Remove deletes one question. Only one delete may run at a time.
func (s *QuestionService) Remove(ctx context.Context, actor, id string) error {
	release, err := s.Delete.Acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.API.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("delete question %s: %w", id, err)
	}
	publish(ctx, s.Events, events.New(events.QuestionDeleted, "question", id, actor, nil))
	return nil
}
