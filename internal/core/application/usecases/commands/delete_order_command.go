package commands

import (
	"errors"
	"time"

	"fieldservice/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order observed at expectedUpdatedAt.
type DeleteOrderCommand struct {
	orderID           int64
	expectedUpdatedAt time.Time
	actorID           int64

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID int64, expectedUpdatedAt time.Time, actorID int64) (DeleteOrderCommand, error) {
	if err := errors.Join(
		positiveID("orderID", orderID),
		requiredVersion("expectedUpdatedAt", expectedUpdatedAt),
		positiveID("actorID", actorID),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		orderID:           orderID,
		expectedUpdatedAt: expectedUpdatedAt,
		actorID:           actorID,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() int64               { return c.orderID }
func (c DeleteOrderCommand) ExpectedUpdatedAt() time.Time { return c.expectedUpdatedAt }
func (c DeleteOrderCommand) ActorID() int64               { return c.actorID }
