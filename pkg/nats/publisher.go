package nats

import (
	"context"
	"fmt"

	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var _ messaging.Publisher = (*NatsPublisher)(nil)

// NatsPublisher writes catalog events to a JetStream stream.
type NatsPublisher struct {
	js jetstream.JetStream
}

func NewNatsPublisher(js jetstream.JetStream) *NatsPublisher {
	return &NatsPublisher{js: js}
}

// Publish sends the event payload as JSON and waits for the stream acknowledgement.
// The trace context of ctx travels in the message headers.
func (p *NatsPublisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Subject(), err)
	}
	msg := nats.NewMsg(event.Subject())
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	ack, err := p.js.PublishMsg(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	if ack.Stream == "" {
		return fmt.Errorf("publish %s: no stream acknowledged the message", event.Subject())
	}
	return nil
}
