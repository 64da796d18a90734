// Package events defines the change events published after successful product writes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var (
	_ messaging.Event = ProductCreated{}
	_ messaging.Event = ProductUpdated{}
	_ messaging.Event = ProductDeleted{}
)

// ProductCreated is published after a product is inserted.
type ProductCreated struct {
	Carrier    propagation.MapCarrier `json:"carrier,omitempty"`
	Product    map[string]any         `json:"product"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewProductCreated(ctx context.Context, p *model.Product) ProductCreated {
	return ProductCreated{Carrier: carrierFrom(ctx), Product: p.Serialize(), OccurredAt: time.Now().UTC()}
}

func (e ProductCreated) Subject() string          { return messaging.ProductsCreatedSubject }
func (e ProductCreated) Payload() ([]byte, error) { return json.Marshal(e) }

// ProductUpdated is published after a product is re-persisted.
type ProductUpdated struct {
	Carrier    propagation.MapCarrier `json:"carrier,omitempty"`
	Product    map[string]any         `json:"product"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewProductUpdated(ctx context.Context, p *model.Product) ProductUpdated {
	return ProductUpdated{Carrier: carrierFrom(ctx), Product: p.Serialize(), OccurredAt: time.Now().UTC()}
}

func (e ProductUpdated) Subject() string          { return messaging.ProductsUpdatedSubject }
func (e ProductUpdated) Payload() ([]byte, error) { return json.Marshal(e) }

// ProductDeleted is published after a product is removed.
type ProductDeleted struct {
	Carrier    propagation.MapCarrier `json:"carrier,omitempty"`
	ProductID  uuid.UUID              `json:"product_id"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewProductDeleted(ctx context.Context, id uuid.UUID) ProductDeleted {
	return ProductDeleted{Carrier: carrierFrom(ctx), ProductID: id, OccurredAt: time.Now().UTC()}
}

func (e ProductDeleted) Subject() string          { return messaging.ProductsDeletedSubject }
func (e ProductDeleted) Payload() ([]byte, error) { return json.Marshal(e) }

// carrierFrom captures the trace context so consumers can continue the trace.
func carrierFrom(ctx context.Context) propagation.MapCarrier {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier
}
