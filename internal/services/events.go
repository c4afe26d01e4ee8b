package services

import (
	"context"

	"go.uber.org/zap"

	"redheart/internal/events"
	applog "redheart/internal/log"
)

// publish sends e and only logs a failure; the mutation already happened.
func publish(ctx context.Context, p events.Publisher, e events.AdminEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		applog.L().Warn("event.publish.fail",
			zap.String("event", e.Action),
			zap.String("resource_id", e.ResourceID),
			zap.Error(err))
	}
}
