package services

import (
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
)

// ConflictDetector tests a window against a technician's bookings.
type ConflictDetector struct{}

func NewConflictDetector() ConflictDetector {
	return ConflictDetector{}
}

// HasConflict reports whether an active booking overlaps window. Bookings that only
// touch window at an endpoint, and bookings of unscheduled orders, never conflict.
func (ConflictDetector) HasConflict(window kernel.TimeWindow, bookings []order.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		other, ok := b.Window()
		if !ok {
			continue
		}
		if window.Overlaps(other) {
			return true
		}
	}
	return false
}
