package commands

import (
	"errors"
	"slices"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new field-service order.
//
// Example:
//
//	start := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
//	cmd, err := NewCreateOrderCommand(clientID, []int64{3}, &start, nil, actorID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID    int64
	serviceIDs  []int64
	scheduledAt *time.Time
	endAt       *time.Time
	actorID     int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order data. scheduledAt may be nil for an order
// that is not planned yet; endAt requires scheduledAt.
func NewCreateOrderCommand(
	clientID int64,
	serviceIDs []int64,
	scheduledAt, endAt *time.Time,
	actorID int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setServiceIDs(serviceIDs),
		cmd.setSchedule(scheduledAt, endAt),
		positiveID("actorID", actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.actorID = actorID

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ClientID() int64 {
	return c.clientID
}

func (c CreateOrderCommand) ServiceIDs() []int64 {
	return c.serviceIDs
}

func (c CreateOrderCommand) ScheduledAt() *time.Time {
	return c.scheduledAt
}

func (c CreateOrderCommand) EndAt() *time.Time {
	return c.endAt
}

func (c CreateOrderCommand) ActorID() int64 {
	return c.actorID
}

func (c *CreateOrderCommand) setClientID(clientID int64) error {
	if err := positiveID("clientID", clientID); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setServiceIDs(serviceIDs []int64) error {
	for _, id := range serviceIDs {
		if err := positiveID("serviceIDs", id); err != nil {
			return err
		}
	}

	c.serviceIDs = slices.Clone(serviceIDs)
	return nil
}

func (c *CreateOrderCommand) setSchedule(scheduledAt, endAt *time.Time) error {
	if scheduledAt == nil {
		if endAt != nil {
			return errs.NewValueIsRequiredError("scheduledAt")
		}
		return nil
	}

	if _, err := kernel.EffectiveWindow(*scheduledAt, endAt); err != nil {
		return err
	}

	c.scheduledAt = scheduledAt
	c.endAt = endAt
	return nil
}
