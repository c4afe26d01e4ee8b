// Package events publishes an audit trail of admin mutations.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusUpdated = "order.status.updated"
	ProductDeleted     = "product.deleted"
	ProductsImported   = "products.imported"
	ProductsUpdated    = "products.updated"
	AddOnCreated       = "addon.created"
	AddOnEdited        = "addon.edited"
	AddOnSoftDeleted   = "addon.soft_deleted"
	PageUpserted       = "page.upserted"
	QuestionsCreated   = "questions.created"
	QuestionDeleted    = "question.deleted"
	ImageUploaded      = "image.uploaded"
)

type AdminEvent struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id"`
	Actor      string         `json:"actor"`
	At         time.Time      `json:"at"`
	Fields     map[string]any `json:"fields,omitempty"`
}

func New(action, resource, resourceID, actor string, fields map[string]any) AdminEvent {
	return AdminEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Actor:      actor,
		At:         time.Now().UTC(),
		Fields:     fields,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e AdminEvent) error
	Close() error
}

// Nop drops every event; it is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, AdminEvent) error { return nil }
func (Nop) Close() error                              { return nil }
