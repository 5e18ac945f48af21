package commands

import (
	"context"

	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// RemoveVisitCommandHandler soft-deletes a visit. Removing the last visit of an
// IN_PROGRESS order puts the order and its working technicians back to PENDING/ASSIGNED.
type RemoveVisitCommandHandler struct {
	uowFactory UoWFactory
	machine    services.OrderStatusMachine
	clock      ports.Clock
}

func NewRemoveVisitCommandHandler(uowFactory UoWFactory, clock ports.Clock) RemoveVisitCommandHandler {
	return RemoveVisitCommandHandler{
		uowFactory: uowFactory,
		machine:    services.NewOrderStatusMachine(),
		clock:      clock,
	}
}

func (h RemoveVisitCommandHandler) Handle(ctx context.Context, cmd RemoveVisitCommand) error {
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
	visitRepo := uow.VisitRepository()

	v, err := visitRepo.Get(ctx, cmd.VisitID())
	if err != nil {
		return err
	}

	o, err := orderRepo.GetForUpdate(ctx, v.OrderID())
	if err != nil {
		return err
	}

	if err = v.Delete(now); err != nil {
		return err
	}
	v.Touch(now, cmd.ActorID())
	if err = visitRepo.Update(ctx, v); err != nil {
		return err
	}

	remaining, err := visitRepo.CountActive(ctx, o.ID())
	if err != nil {
		return err
	}

	h.machine.VisitRemoved(o, remaining, now)
	if err = o.RecordActor(cmd.ActorID()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
