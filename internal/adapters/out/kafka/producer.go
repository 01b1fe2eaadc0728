// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"time"

	"procurement/internal/adapters/out/events"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// EventTypeHeader carries the event type so consumers can route without
// decoding the payload.
const EventTypeHeader = "event-type"

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer implements ports.EventPublisher. Messages are keyed by
// order number, so the events of one order stay on one partition.
type OrderEventProducer struct {
	writer MessageWriter
	topic  string
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return NewOrderEventProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
	}, topic)
}

func NewOrderEventProducerWithWriter(writer MessageWriter, topic string) *OrderEventProducer {
	return &OrderEventProducer{writer: writer, topic: topic}
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, event order.CreatedEvent) error {
	data, err := events.EncodeOrderCreated(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: data,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(order.CreatedEventType)},
		},
		Time: event.OccurredAt,
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.NewDependencyUnavailableError("kafka topic "+p.topic, err)
	}
	return nil
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
