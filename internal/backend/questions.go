package backend

import (
	"context"
	"net/http"

	"redheart/internal/domain"
)

func (c *Client) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	var out []domain.Question
	if err := c.getJSON(ctx, "/questions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateQuestions(ctx context.Context, qs []domain.NewQuestion) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/questions", qs, nil)
	return err
}

func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	_, err := c.sendJSON(ctx, http.MethodDelete, "/questions/"+escape(id), nil, nil)
	return err
}

func (c *Client) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	var out []domain.Submission
	if err := c.getJSON(ctx, "/questions/submissions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
