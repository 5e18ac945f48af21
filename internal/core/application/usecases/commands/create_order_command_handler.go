package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
)

// CreateOrderCommandHandler creates orders in PENDING status with no workers.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock)
//	cmd, _ := NewCreateOrderCommand(clientID, nil, &start, nil, actorID)
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o.ID() is now bound and the order waits for assignment
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.ClientID(), cmd.ServiceIDs(), cmd.ScheduledAt(), cmd.EndAt(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = o.RecordActor(cmd.ActorID()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
