package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/visit"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// RecordVisitCommandHandler stores a visit and applies its sub-transitions: the first
// visit of a PENDING order starts the work, later visits move the remaining ASSIGNED
// technicians to IN_PROGRESS.
type RecordVisitCommandHandler struct {
	uowFactory UoWFactory
	machine    services.OrderStatusMachine
	clock      ports.Clock
}

func NewRecordVisitCommandHandler(uowFactory UoWFactory, clock ports.Clock) RecordVisitCommandHandler {
	return RecordVisitCommandHandler{
		uowFactory: uowFactory,
		machine:    services.NewOrderStatusMachine(),
		clock:      clock,
	}
}

func (h RecordVisitCommandHandler) Handle(ctx context.Context, cmd RecordVisitCommand) (*visit.Visit, error) {
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
	visitRepo := uow.VisitRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.ValidateVisit(cmd.TechnicianID()); err != nil {
		return nil, err
	}

	visitsBefore, err := visitRepo.CountActive(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	v, err := visit.NewVisit(o.ID(), cmd.TechnicianID(), cmd.Window(), cmd.ActorID(), now)
	if err != nil {
		return nil, err
	}
	if err = visitRepo.Add(ctx, v); err != nil {
		return nil, err
	}

	h.machine.VisitRecorded(o, visitsBefore, now)
	if err = o.RecordActor(cmd.ActorID()); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return v, nil
}
