package services

import "fieldservice/internal/core/domain/model/order"

// LoadCounter counts a technician's active bookings.
type LoadCounter struct{}

func NewLoadCounter() LoadCounter {
	return LoadCounter{}
}

// Load counts bookings in ASSIGNED or IN_PROGRESS.
func (LoadCounter) Load(bookings []order.Booking) int {
	n := 0
	for _, b := range bookings {
		if b.IsActive() {
			n++
		}
	}
	return n
}
