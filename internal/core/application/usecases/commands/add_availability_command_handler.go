package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/technician"
)

type AddAvailabilityCommandHandler struct {
	uowFactory TechnicianUoWFactory
}

func NewAddAvailabilityCommandHandler(uowFactory TechnicianUoWFactory) AddAvailabilityCommandHandler {
	return AddAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle appends the availability under the technician row lock, so it cannot race
// with an assignment re-checking the same technician.
func (h AddAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd AddAvailabilityCommand,
) (*technician.Availability, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	technicianRepo := uow.TechnicianRepository()

	t, err := technicianRepo.GetForUpdate(ctx, cmd.TechnicianID())
	if err != nil {
		return nil, err
	}

	a, err := t.AddAvailability(cmd.Window(), cmd.Type())
	if err != nil {
		return nil, err
	}

	if err = technicianRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
