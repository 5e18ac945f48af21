package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/visit"
	"fieldservice/internal/core/ports"
)

type ReviewVisitCommandHandler struct {
	uowFactory VisitUoWFactory
	clock      ports.Clock
}

func NewReviewVisitCommandHandler(uowFactory VisitUoWFactory, clock ports.Clock) ReviewVisitCommandHandler {
	return ReviewVisitCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle reviews the visit if it still carries the stamp the caller observed.
func (h ReviewVisitCommandHandler) Handle(ctx context.Context, cmd ReviewVisitCommand) (*visit.Visit, error) {
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

	visitRepo := uow.VisitRepository()

	v, err := visitRepo.Get(ctx, cmd.VisitID())
	if err != nil {
		return nil, err
	}
	if err = v.CheckVersion(cmd.ExpectedUpdatedAt()); err != nil {
		return nil, err
	}
	if err = v.Review(cmd.Evaluation()); err != nil {
		return nil, err
	}
	v.Touch(h.clock.Now(), cmd.ActorID())

	if err = visitRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return v, nil
}
