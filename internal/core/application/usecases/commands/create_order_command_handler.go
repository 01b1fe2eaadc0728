package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/clock"
	"procurement/internal/pkg/errs"
)

const (
	// DefaultCreateOrderAttempts bounds retries after an order number collision.
	DefaultCreateOrderAttempts = 5

	// DefaultPublishTimeout bounds the post-commit event publication.
	DefaultPublishTimeout = 3 * time.Second
)

// CreateOrderResult is the created order plus non-fatal warnings, e.g. an
// OrderCreated event that could not be published right away. A warning never
// means the order is missing.
type CreateOrderResult struct {
	Order    *order.Order
	Warnings []string
}

// CreateOrderCommandHandler opens new orders.
//
// Within one transaction it checks orders.create, validates the order type and
// department, allocates the order number, persists the order with its items,
// records the nil -> pending history entry and stores an OrderCreated event in
// the outbox. After commit the event is published with a timeout; a failure is
// only a warning because the outbox relay retries it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, clock.System{}, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w)
//	}
type CreateOrderCommandHandler struct {
	uowFactory     UoWFactory
	publisher      ports.EventPublisher
	clock          clock.Clock
	logger         *slog.Logger
	policy         services.OrderPolicy
	maxAttempts    int
	publishTimeout time.Duration
}

// NewCreateOrderCommandHandler creates a handler with the default retry and
// publish timeout settings.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		publisher:      publisher,
		clock:          clk,
		logger:         logger.With("component", "create_order_handler"),
		policy:         services.NewOrderPolicy(),
		maxAttempts:    DefaultCreateOrderAttempts,
		publishTimeout: DefaultPublishTimeout,
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout.
func (h CreateOrderCommandHandler) WithPublishTimeout(timeout time.Duration) CreateOrderCommandHandler {
	if timeout > 0 {
		h.publishTimeout = timeout
	}
	return h
}

// Handle creates the order, retrying the whole transaction when a concurrent
// creation took the same order number.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}
	if err := h.policy.CanCreate(cmd.Principal()); err != nil {
		return CreateOrderResult{}, err
	}

	var (
		created *order.Order
		event   order.CreatedEvent
		err     error
	)
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		created, event, err = h.create(ctx, cmd)
		if !errors.Is(err, errs.ErrConflict) {
			break
		}
		h.logger.WarnContext(ctx, "Order number collision, retrying", "attempt", attempt, "error", err)
	}
	if err != nil {
		return CreateOrderResult{}, err
	}

	h.logger.InfoContext(ctx, "Order created",
		"order_id", created.ID(), "order_number", created.Number().String(), "requester_id", created.RequesterID())

	result := CreateOrderResult{Order: created}
	if warning := h.publish(ctx, event); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	return result, nil
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, order.CreatedEvent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.CreatedEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	details := cmd.Details()
	if err := checkReferences(ctx, uow.ReferenceRepository(), details); err != nil {
		return nil, order.CreatedEvent{}, err
	}

	now := h.clock.Now()
	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, itemDetails := range cmd.Items() {
		item, err := order.NewItem(itemDetails, now)
		if err != nil {
			return nil, order.CreatedEvent{}, err
		}
		items = append(items, item)
	}

	orderRepo := uow.OrderRepository()
	sequence, err := orderRepo.NextNumberSequence(ctx, order.NumberPrefix(now))
	if err != nil {
		return nil, order.CreatedEvent{}, err
	}
	number, err := order.NewNumber(now, sequence)
	if err != nil {
		return nil, order.CreatedEvent{}, err
	}

	requester := cmd.Principal().UserID()
	aggregate, err := order.NewOrder(number, requester, details, items, now)
	if err != nil {
		return nil, order.CreatedEvent{}, err
	}
	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, order.CreatedEvent{}, err
	}

	entry, err := order.NewCreationEntry(aggregate, requester)
	if err != nil {
		return nil, order.CreatedEvent{}, err
	}
	if _, err = uow.WorkflowRepository().Record(ctx, entry); err != nil {
		return nil, order.CreatedEvent{}, err
	}

	event := order.NewCreatedEvent(aggregate)
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, order.CreatedEvent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.CreatedEvent{}, err
	}
	return aggregate, event, nil
}

// checkReferences validates the order type and department ids that are set in
// details; nil ids are skipped.
func checkReferences(
	ctx context.Context,
	refs ports.ReferenceRepository,
	details order.Details,
) error {
	if details.OrderTypeID != nil {
		ok, err := refs.OrderTypeIsActive(ctx, *details.OrderTypeID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"order type",
				fmt.Errorf("order type %d does not exist or is inactive", *details.OrderTypeID),
			)
		}
	}

	if details.DepartmentID != nil {
		ok, err := refs.DepartmentExists(ctx, *details.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"department",
				fmt.Errorf("department %d does not exist", *details.DepartmentID),
			)
		}
	}
	return nil
}

// publish pushes the committed event and marks it published. It returns a
// warning instead of an error: the order exists whatever happens here.
func (h CreateOrderCommandHandler) publish(ctx context.Context, event order.CreatedEvent) string {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.publishTimeout)
	defer cancel()

	if err := h.publisher.PublishOrderCreated(publishCtx, event); err != nil {
		unavailable := errs.NewDependencyUnavailableError("event publisher", err)
		h.logger.WarnContext(ctx, "OrderCreated event not published, relay will retry",
			"order_id", event.OrderID, "event_id", event.EventID.String(), "error", unavailable)
		return "order created but notification is delayed: " + unavailable.Error()
	}

	if err := h.markPublished(publishCtx, event); err != nil {
		h.logger.WarnContext(ctx, "OrderCreated event published but not marked, relay may publish it again",
			"order_id", event.OrderID, "event_id", event.EventID.String(), "error", err)
	}
	return ""
}

func (h CreateOrderCommandHandler) markPublished(ctx context.Context, event order.CreatedEvent) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().MarkPublished(ctx, event.EventID, h.clock.Now()); err != nil {
		return fmt.Errorf("mark event %s of order %s published: %w",
			event.EventID, strconv.FormatInt(event.OrderID, 10), err)
	}
	return uow.Commit(ctx)
}
