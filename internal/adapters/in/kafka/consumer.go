// Package kafka consumes order events and hands them to the notifier.
package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"procurement/internal/adapters/out/events"
	"procurement/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultNotifyAttempts = 3
	DefaultRetryBackoff   = 2 * time.Second
)

// Headers added to a message parked on the dead-letter topic.
const (
	DeadLetterTopicHeader     = "dead-letter-topic"
	DeadLetterPartitionHeader = "dead-letter-partition"
	DeadLetterOffsetHeader    = "dead-letter-offset"
	DeadLetterErrorHeader     = "dead-letter-error"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DeadLetterWriter is the part of *kafka.Writer used to park messages whose
// notification kept failing.
type DeadLetterWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderCreatedConsumer delivers order.created events to a notifier, at least
// once. The offset of a message is committed after the notifier succeeded,
// or right away when the payload cannot be decoded, since no retry would
// fix it. When every attempt fails the message is copied to the dead-letter
// topic and committed, so one bad message does not hold back the partition.
// Without a dead-letter topic, or when parking fails, Run returns the error
// without committing and the message is redelivered after a restart.
type OrderCreatedConsumer struct {
	reader     MessageReader
	deadLetter DeadLetterWriter
	notifier   ports.Notifier
	logger     *slog.Logger
	attempts   int
	backoff    time.Duration
}

func NewOrderCreatedConsumer(brokers []string, topic, groupID string, notifier ports.Notifier, logger *slog.Logger) *OrderCreatedConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return NewOrderCreatedConsumerWithReader(reader, notifier, logger)
}

func NewOrderCreatedConsumerWithReader(reader MessageReader, notifier ports.Notifier, logger *slog.Logger) *OrderCreatedConsumer {
	return &OrderCreatedConsumer{
		reader:   reader,
		notifier: notifier,
		logger:   logger.With("component", "order_created_consumer"),
		attempts: DefaultNotifyAttempts,
		backoff:  DefaultRetryBackoff,
	}
}

// NewDeadLetterWriter returns a writer for the dead-letter topic.
func NewDeadLetterWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
}

// WithDeadLetter parks messages that exhausted their attempts on writer.
func (c *OrderCreatedConsumer) WithDeadLetter(writer DeadLetterWriter) *OrderCreatedConsumer {
	c.deadLetter = writer
	return c
}

// WithRetry overrides the notify attempts and the pause between them.
func (c *OrderCreatedConsumer) WithRetry(attempts int, backoff time.Duration) *OrderCreatedConsumer {
	if attempts > 0 {
		c.attempts = attempts
	}
	if backoff >= 0 {
		c.backoff = backoff
	}
	return c
}

// Run consumes until ctx is cancelled, which is not an error.
func (c *OrderCreatedConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err = c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if err = c.park(ctx, msg, err); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *OrderCreatedConsumer) handle(ctx context.Context, msg kafka.Message) error {
	event, err := events.DecodeOrderCreated(msg.Value)
	if err != nil {
		c.logger.ErrorContext(ctx, "Skipping undecodable message",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		return nil
	}

	for attempt := 1; ; attempt++ {
		err = c.notifier.NotifyOrderCreated(ctx, event)
		if err == nil {
			c.logger.InfoContext(ctx, "Order notification sent",
				"order_number", event.OrderNumber, "event_id", event.EventID.String())
			return nil
		}

		c.logger.WarnContext(ctx, "Order notification failed",
			"order_number", event.OrderNumber, "attempt", attempt, "error", err)
		if attempt >= c.attempts {
			return errors.Join(errors.New("notify order "+event.OrderNumber), err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff):
		}
	}
}

// park copies msg to the dead-letter topic. It returns cause, joined with
// the write failure if any, when the message could not be parked.
func (c *OrderCreatedConsumer) park(ctx context.Context, msg kafka.Message, cause error) error {
	attrs := []any{"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", cause}
	if c.deadLetter == nil {
		c.logger.ErrorContext(ctx, "Notification abandoned, consumer stops", attrs...)
		return cause
	}

	parked := kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
		Headers: append(append([]kafka.Header(nil), msg.Headers...),
			kafka.Header{Key: DeadLetterTopicHeader, Value: []byte(msg.Topic)},
			kafka.Header{Key: DeadLetterPartitionHeader, Value: []byte(strconv.Itoa(msg.Partition))},
			kafka.Header{Key: DeadLetterOffsetHeader, Value: []byte(strconv.FormatInt(msg.Offset, 10))},
			kafka.Header{Key: DeadLetterErrorHeader, Value: []byte(cause.Error())},
		),
	}
	if err := c.deadLetter.WriteMessages(ctx, parked); err != nil {
		c.logger.ErrorContext(ctx, "Dead-letter write failed, consumer stops", append(attrs, "write_error", err)...)
		return errors.Join(cause, err)
	}

	c.logger.ErrorContext(ctx, "Notification parked on dead-letter topic", attrs...)
	return nil
}

func (c *OrderCreatedConsumer) Close() error {
	err := c.reader.Close()
	if c.deadLetter != nil {
		err = errors.Join(err, c.deadLetter.Close())
	}
	return err
}
