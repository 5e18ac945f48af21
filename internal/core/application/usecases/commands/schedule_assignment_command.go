package commands

import (
	"errors"

	"fieldservice/internal/pkg/guard"
)

var ErrScheduleAssignmentCommandIsNotConstructed = errors.New(
	"ScheduleAssignmentCommand must be created via NewScheduleAssignmentCommand constructor",
)

// ScheduleAssignmentCommand asks the scheduler to pick a technician for an order.
//
// Example:
//
//	cmd, err := NewScheduleAssignmentCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	assignment, err := handler.Handle(ctx, cmd)
type ScheduleAssignmentCommand struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewScheduleAssignmentCommand(orderID int64) (ScheduleAssignmentCommand, error) {
	if err := positiveID("orderID", orderID); err != nil {
		return ScheduleAssignmentCommand{}, err
	}

	return ScheduleAssignmentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ScheduleAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrScheduleAssignmentCommandIsNotConstructed)
}

func (c ScheduleAssignmentCommand) OrderID() int64 {
	return c.orderID
}
