package commands

import (
	"context"

	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// DeleteOrderCommandHandler moves an order to DELETED, cancels its active technicians
// and queues an ORDER_DELETED notification for each of them.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	machine    services.OrderStatusMachine
	clock      ports.Clock
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		machine:    services.NewOrderStatusMachine(),
		clock:      clock,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.CheckVersion(cmd.ExpectedUpdatedAt()); err != nil {
		return err
	}

	outcome, err := h.machine.Delete(o, now)
	if err != nil {
		return err
	}
	if err = o.RecordActor(cmd.ActorID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, outcome.Notifications...); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
