package services

import (
	"context"

	"stockroom/pkg/logger"
)

// Routing keys of the record events published after successful mutations.
const (
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeleted     = "user.deleted"
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventProductLowStock = "product.low_stock"
	EventInventorySeeded = "inventory.seeded"
)

// EventPublisher is satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }

// NoopPublisher drops every event.
func NoopPublisher() EventPublisher { return noopPublisher{} }

// publish never fails the caller: a lost event is logged and the request
// carries on.
func publish(ctx context.Context, events EventPublisher, logg *logger.Logger, routingKey string, payload any) {
	if err := events.Publish(ctx, routingKey, payload); err != nil {
		logg.Warn(logg.WithField(ctx, "event", routingKey), "event.publish_failed", err)
	}
}
