package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/guard"
)

var ErrAddAvailabilityCommandIsNotConstructed = errors.New(
	"AddAvailabilityCommand must be created via NewAddAvailabilityCommand constructor",
)

// AddAvailabilityCommand declares a window during which a technician accepts work.
type AddAvailabilityCommand struct {
	technicianID int64
	window       kernel.TimeWindow
	kind         technician.AvailabilityType

	guard guard.ConstructorGuard
}

func NewAddAvailabilityCommand(
	technicianID int64,
	startAt, endAt time.Time,
	kind string,
) (AddAvailabilityCommand, error) {
	window, windowErr := kernel.NewTimeWindow(startAt, endAt)
	availabilityType := technician.AvailabilityType(kind)

	if err := errors.Join(
		positiveID("technicianID", technicianID),
		windowErr,
		availabilityType.Validate(),
	); err != nil {
		return AddAvailabilityCommand{}, err
	}

	return AddAvailabilityCommand{
		technicianID: technicianID,
		window:       window,
		kind:         availabilityType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrAddAvailabilityCommandIsNotConstructed)
}

func (c AddAvailabilityCommand) TechnicianID() int64               { return c.technicianID }
func (c AddAvailabilityCommand) Window() kernel.TimeWindow         { return c.window }
func (c AddAvailabilityCommand) Type() technician.AvailabilityType { return c.kind }
