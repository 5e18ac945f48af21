package commands

import (
	"errors"
	"slices"
	"time"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderChange lists the fields an update touches. Nil fields are left as they are.
// A non-nil empty WorkerIDs clears the worker set. ScheduledAt or EndAt set means the
// window is replaced; a missing EndAt then falls back to the default duration.
type OrderChange struct {
	Status        *string
	WorkerIDs     []int64
	ResponsibleID *int64
	ScheduledAt   *time.Time
	EndAt         *time.Time
	ServiceIDs    []int64
}

// UpdateOrderCommand is the general order update: status, workers, window and services,
// conditioned on the version stamp the caller last observed.
//
// Example:
//
//	status := "COMPLETED"
//	cmd, err := NewUpdateOrderCommand(orderID, actorID, observedUpdatedAt, OrderChange{Status: &status})
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type UpdateOrderCommand struct {
	orderID           int64
	actorID           int64
	expectedUpdatedAt time.Time
	status            *order.Status
	workerIDs         []int64
	responsibleID     *int64
	reschedule        bool
	scheduledAt       *time.Time
	endAt             *time.Time
	serviceIDs        []int64

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	orderID, actorID int64,
	expectedUpdatedAt time.Time,
	change OrderChange,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		orderID:           orderID,
		actorID:           actorID,
		expectedUpdatedAt: expectedUpdatedAt,
		workerIDs:         slices.Clone(change.WorkerIDs),
		responsibleID:     change.ResponsibleID,
		reschedule:        change.ScheduledAt != nil || change.EndAt != nil,
		scheduledAt:       change.ScheduledAt,
		endAt:             change.EndAt,
		serviceIDs:        slices.Clone(change.ServiceIDs),
		guard:             guard.NewConstructorGuard(),
	}
	if change.WorkerIDs != nil && cmd.workerIDs == nil {
		cmd.workerIDs = []int64{}
	}
	if change.ServiceIDs != nil && cmd.serviceIDs == nil {
		cmd.serviceIDs = []int64{}
	}

	if err := errors.Join(
		positiveID("orderID", orderID),
		positiveID("actorID", actorID),
		requiredVersion("expectedUpdatedAt", expectedUpdatedAt),
		cmd.setStatus(change.Status),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() int64               { return c.orderID }
func (c UpdateOrderCommand) ActorID() int64               { return c.actorID }
func (c UpdateOrderCommand) ExpectedUpdatedAt() time.Time { return c.expectedUpdatedAt }
func (c UpdateOrderCommand) Status() *order.Status        { return c.status }
func (c UpdateOrderCommand) WorkerIDs() []int64           { return c.workerIDs }
func (c UpdateOrderCommand) ResponsibleID() *int64        { return c.responsibleID }
func (c UpdateOrderCommand) ServiceIDs() []int64          { return c.serviceIDs }

// Schedule returns the requested window and whether the window changes at all.
func (c UpdateOrderCommand) Schedule() (*time.Time, *time.Time, bool) {
	return c.scheduledAt, c.endAt, c.reschedule
}

func (c *UpdateOrderCommand) setStatus(status *string) error {
	if status == nil {
		return nil
	}

	s, err := order.ParseStatus(*status)
	if err != nil {
		return err
	}
	c.status = &s
	return nil
}
