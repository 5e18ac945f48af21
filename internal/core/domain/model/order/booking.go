package order

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

// Booking is a read model of one worker row joined with its order's window. It feeds
// load counting and overlap detection for a technician.
type Booking struct {
	OrderID      int64
	TechnicianID int64
	Status       WorkerStatus
	ScheduledAt  *time.Time
	EndAt        *time.Time
}

// IsActive reports whether the booking counts towards load.
func (b Booking) IsActive() bool {
	return b.Status.IsActive()
}

// Window returns the effective window of the booked order. ok is false when the order
// has no scheduled date or its stored window is malformed.
func (b Booking) Window() (kernel.TimeWindow, bool) {
	if b.ScheduledAt == nil {
		return kernel.TimeWindow{}, false
	}
	w, err := kernel.EffectiveWindow(*b.ScheduledAt, b.EndAt)
	if err != nil {
		return kernel.TimeWindow{}, false
	}
	return w, true
}

// Assignment is the outcome of scheduling a technician onto an order.
type Assignment struct {
	OrderID      int64
	TechnicianID int64
	Status       WorkerStatus
	AssignedAt   time.Time
}
