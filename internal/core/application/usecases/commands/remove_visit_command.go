package commands

import (
	"errors"

	"fieldservice/internal/pkg/guard"
)

var ErrRemoveVisitCommandIsNotConstructed = errors.New(
	"RemoveVisitCommand must be created via NewRemoveVisitCommand constructor",
)

// RemoveVisitCommand soft-deletes a visit.
type RemoveVisitCommand struct {
	visitID int64
	actorID int64

	guard guard.ConstructorGuard
}

func NewRemoveVisitCommand(visitID, actorID int64) (RemoveVisitCommand, error) {
	if err := errors.Join(
		positiveID("visitID", visitID),
		positiveID("actorID", actorID),
	); err != nil {
		return RemoveVisitCommand{}, err
	}

	return RemoveVisitCommand{
		visitID: visitID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveVisitCommand) Validate() error {
	return c.guard.Validate(ErrRemoveVisitCommandIsNotConstructed)
}

func (c RemoveVisitCommand) VisitID() int64 { return c.visitID }
func (c RemoveVisitCommand) ActorID() int64 { return c.actorID }
