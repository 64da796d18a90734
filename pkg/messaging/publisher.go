// Package messaging defines the event publishing contract used by the catalog.
package messaging

import (
	"context"
	"log/slog"
)

// Subjects of product change events.
const (
	ProductsSubjects       = "products.>"
	ProductsCreatedSubject = "products.created"
	ProductsUpdatedSubject = "products.updated"
	ProductsDeletedSubject = "products.deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct {
	Logger *slog.Logger
}

func (p NopPublisher) Publish(ctx context.Context, event Event) error {
	if p.Logger != nil {
		p.Logger.DebugContext(ctx, "event publishing disabled, dropping event", "subject", event.Subject())
	}
	return nil
}
