package technician

import (
	"fmt"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

type AvailabilityType string

const (
	FullTime AvailabilityType = "FULL_TIME"
	PartTime AvailabilityType = "PART_TIME"
	OnCall   AvailabilityType = "ON_CALL"
)

func (t AvailabilityType) Validate() error {
	switch t {
	case FullTime, PartTime, OnCall:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("availability type",
			fmt.Errorf("%q is not a valid availability type", string(t)))
	}
}

// Availability is a window during which a technician accepts work.
type Availability struct {
	id     int64
	window kernel.TimeWindow
	kind   AvailabilityType
}

func NewAvailability(window kernel.TimeWindow, kind AvailabilityType) (*Availability, error) {
	return RestoreAvailability(0, window, kind)
}

func RestoreAvailability(id int64, window kernel.TimeWindow, kind AvailabilityType) (*Availability, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if window.Duration() <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("availability", fmt.Errorf("window %s is empty", window))
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return &Availability{id: id, window: window, kind: kind}, nil
}

func (a *Availability) ID() int64 {
	return a.id
}

// BindID sets the database identifier after insert.
func (a *Availability) BindID(id int64) {
	if a.id == 0 {
		a.id = id
	}
}

func (a *Availability) Window() kernel.TimeWindow {
	return a.window
}

func (a *Availability) Type() AvailabilityType {
	return a.kind
}
