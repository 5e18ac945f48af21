package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// UpdateOrderCommandHandler applies an order update with its worker cascade.
// The order row is locked, the caller's version stamp is checked before anything is
// mutated, and the order, its worker rows and the resulting notifications are
// committed together.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	machine    services.OrderStatusMachine
	clock      ports.Clock
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		machine:    services.NewOrderStatusMachine(),
		clock:      clock,
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.CheckVersion(cmd.ExpectedUpdatedAt()); err != nil {
		return nil, err
	}

	activeVisits, err := uow.VisitRepository().CountActive(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	if scheduledAt, endAt, ok := cmd.Schedule(); ok {
		if scheduledAt == nil {
			scheduledAt = o.ScheduledAt()
		}
		if err = o.Reschedule(scheduledAt, endAt); err != nil {
			return nil, err
		}
	}
	if cmd.ServiceIDs() != nil {
		if err = o.ReplaceServices(cmd.ServiceIDs()); err != nil {
			return nil, err
		}
	}

	outcome, err := h.machine.Update(o, services.OrderUpdate{
		Status:        cmd.Status(),
		WorkerIDs:     cmd.WorkerIDs(),
		ResponsibleID: cmd.ResponsibleID(),
	}, activeVisits, now)
	if err != nil {
		return nil, err
	}
	if err = o.RecordActor(cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.NotificationRepository().Add(ctx, outcome.Notifications...); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
