package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"procurement/internal/adapters/out/events"
	kafka_adapter "procurement/internal/adapters/out/kafka"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func createdEvent() order.CreatedEvent {
	return order.CreatedEvent{
		EventID:     kernel.NewUUID(),
		OrderID:     11,
		OrderNumber: "ORD-2026100001",
		Title:       "Laptop purchase",
		RequesterID: 7,
		Priority:    order.PriorityMedium,
		Currency:    kernel.DefaultCurrency,
		OccurredAt:  time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestOrderEventProducer_PublishOrderCreated(t *testing.T) {
	writer := &MockWriter{}
	producer := kafka_adapter.NewOrderEventProducerWithWriter(writer, "order-events")
	event := createdEvent()

	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	err := producer.PublishOrderCreated(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "ORD-2026100001", string(sent[0].Key))
	require.Len(t, sent[0].Headers, 1)
	assert.Equal(t, order.CreatedEventType, string(sent[0].Headers[0].Value))

	decoded, err := events.DecodeOrderCreated(sent[0].Value)
	require.NoError(t, err)
	assert.True(t, event.EventID.IsEqual(decoded.EventID))
	writer.AssertExpectations(t)
}

func TestOrderEventProducer_WriteFailureIsDependencyUnavailable(t *testing.T) {
	writer := &MockWriter{}
	producer := kafka_adapter.NewOrderEventProducerWithWriter(writer, "order-events")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available")).Once()

	err := producer.PublishOrderCreated(context.Background(), createdEvent())

	require.ErrorIs(t, err, errs.ErrDependencyUnavailable)
	assert.Contains(t, err.Error(), "order-events")
}

func TestOrderEventProducer_Close(t *testing.T) {
	writer := &MockWriter{}
	writer.On("Close").Return(nil).Once()

	require.NoError(t, kafka_adapter.NewOrderEventProducerWithWriter(writer, "order-events").Close())
	writer.AssertExpectations(t)
}
