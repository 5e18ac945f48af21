package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/technician"
)

// CreateTechnicianCommandHandler registers an ACTIVE technician without availabilities.
// A DNI already used by a non-deleted technician is rejected by the repository.
type CreateTechnicianCommandHandler struct {
	uowFactory TechnicianUoWFactory
}

func NewCreateTechnicianCommandHandler(uowFactory TechnicianUoWFactory) CreateTechnicianCommandHandler {
	return CreateTechnicianCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateTechnicianCommandHandler) Handle(
	ctx context.Context,
	cmd CreateTechnicianCommand,
) (*technician.Technician, error) {
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

	t, err := technician.NewTechnician(cmd.DNI(), cmd.Name())
	if err != nil {
		return nil, err
	}

	if err = uow.TechnicianRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
