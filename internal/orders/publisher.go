package orders

import (
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-shop-orders.git/internal/kafka"
)

// Publisher wraps the async kafka producer with the envelope wire format so
// handlers only deal in typed payloads.
type Publisher struct {
	Producer *kafkax.Producer
}

func (p *Publisher) Publish(env Envelope, payload any) {
	env.Payload = kafkax.MustMarshal(payload)
	p.Producer.Publish(PartitionKey(env.CorrelationID), kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(env.EventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
