package commands

import (
	"errors"
	"time"

	"fieldservice/internal/pkg/guard"
)

var ErrReviewVisitCommandIsNotConstructed = errors.New(
	"ReviewVisitCommand must be created via NewReviewVisitCommand constructor",
)

// ReviewVisitCommand marks a visit reviewed with an optional evaluation.
type ReviewVisitCommand struct {
	visitID           int64
	evaluation        *int
	expectedUpdatedAt time.Time
	actorID           int64

	guard guard.ConstructorGuard
}

func NewReviewVisitCommand(
	visitID int64,
	evaluation *int,
	expectedUpdatedAt time.Time,
	actorID int64,
) (ReviewVisitCommand, error) {
	if err := errors.Join(
		positiveID("visitID", visitID),
		requiredVersion("expectedUpdatedAt", expectedUpdatedAt),
		positiveID("actorID", actorID),
	); err != nil {
		return ReviewVisitCommand{}, err
	}

	return ReviewVisitCommand{
		visitID:           visitID,
		evaluation:        evaluation,
		expectedUpdatedAt: expectedUpdatedAt,
		actorID:           actorID,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewVisitCommand) Validate() error {
	return c.guard.Validate(ErrReviewVisitCommandIsNotConstructed)
}

func (c ReviewVisitCommand) VisitID() int64               { return c.visitID }
func (c ReviewVisitCommand) Evaluation() *int             { return c.evaluation }
func (c ReviewVisitCommand) ExpectedUpdatedAt() time.Time { return c.expectedUpdatedAt }
func (c ReviewVisitCommand) ActorID() int64               { return c.actorID }
