package commands

import (
	"context"
	"errors"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// ScheduleAssignmentCommandHandler assigns the least loaded qualifying technician to an order.
//
// The order row is locked first. Candidates are ranked on a snapshot of all bookings,
// then each one is locked and re-checked against its current bookings before the
// assignment is written, so two concurrent assignments can never double-book a
// technician. A candidate that stopped qualifying is skipped in favour of the next one.
type ScheduleAssignmentCommandHandler struct {
	uowFactory UoWFactory
	scheduler  services.AssignmentScheduler
	clock      ports.Clock
}

func NewScheduleAssignmentCommandHandler(
	uowFactory UoWFactory,
	scheduler services.AssignmentScheduler,
	clock ports.Clock,
) ScheduleAssignmentCommandHandler {
	return ScheduleAssignmentCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
	}
}

func (h ScheduleAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd ScheduleAssignmentCommand,
) (order.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return order.Assignment{}, err
	}
	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	technicianRepo := uow.TechnicianRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return order.Assignment{}, err
	}

	window, err := h.scheduler.Window(o, now)
	if err != nil {
		return order.Assignment{}, err
	}

	technicians, err := technicianRepo.GetAllSchedulable(ctx)
	if err != nil {
		return order.Assignment{}, err
	}

	ids := make([]int64, 0, len(technicians))
	for _, t := range technicians {
		ids = append(ids, t.ID())
	}
	bookings, err := orderRepo.Bookings(ctx, ids)
	if err != nil {
		return order.Assignment{}, err
	}

	ranked, err := h.scheduler.Rank(o, technicians, bookings, now)
	if err != nil {
		return order.Assignment{}, err
	}

	for _, candidate := range ranked {
		t, err := technicianRepo.GetForUpdate(ctx, candidate.Technician.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return order.Assignment{}, err
		}

		current, err := orderRepo.Bookings(ctx, []int64{t.ID()})
		if err != nil {
			return order.Assignment{}, err
		}
		if !h.scheduler.Qualifies(window, t, current[t.ID()]) {
			continue
		}

		assignment, note, err := h.scheduler.Assign(o, t, now)
		if err != nil {
			return order.Assignment{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return order.Assignment{}, err
		}
		if err = uow.NotificationRepository().Add(ctx, note); err != nil {
			return order.Assignment{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return order.Assignment{}, err
		}
		return assignment, nil
	}

	return order.Assignment{}, errs.NewSchedulingConflictError(o.ID(),
		"every ranked technician was booked concurrently")
}
