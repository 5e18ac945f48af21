package commands

import (
	"errors"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

const DefaultNotificationBatchSize = 100

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand delivers up to BatchSize queued notifications.
type DispatchNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize < 1 {
		return DispatchNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return DispatchNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}
