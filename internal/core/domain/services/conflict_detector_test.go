package services_test

import (
	"testing"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestConflictDetector_HasConflict(t *testing.T) {
	window := mustWindow(t, at(8, 0), at(10, 0))
	detector := services.NewConflictDetector()

	tests := []struct {
		name     string
		bookings []order.Booking
		want     bool
	}{
		{
			name: "no bookings",
			want: false,
		},
		{
			name:     "overlapping assigned booking",
			bookings: []order.Booking{booking(1, order.WorkerAssigned, at(9, 0), ptr(at(11, 0)))},
			want:     true,
		},
		{
			name:     "overlapping in progress booking",
			bookings: []order.Booking{booking(1, order.WorkerInProgress, at(7, 0), ptr(at(8, 30)))},
			want:     true,
		},
		{
			name:     "booking ending at window start touches only",
			bookings: []order.Booking{booking(1, order.WorkerAssigned, at(6, 0), ptr(at(8, 0)))},
			want:     false,
		},
		{
			name:     "booking starting at window end touches only",
			bookings: []order.Booking{booking(1, order.WorkerAssigned, at(10, 0), nil)},
			want:     false,
		},
		{
			name:     "default two hour end overlaps",
			bookings: []order.Booking{booking(1, order.WorkerAssigned, at(6, 30), nil)},
			want:     true,
		},
		{
			name:     "closed booking is ignored",
			bookings: []order.Booking{booking(1, order.WorkerCompleted, at(8, 0), ptr(at(10, 0)))},
			want:     false,
		},
		{
			name:     "reassigned booking is ignored",
			bookings: []order.Booking{booking(1, order.WorkerReassigned, at(8, 0), ptr(at(10, 0)))},
			want:     false,
		},
		{
			name:     "unscheduled booking never conflicts",
			bookings: []order.Booking{{OrderID: 1, Status: order.WorkerAssigned}},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.HasConflict(window, tt.bookings))
		})
	}
}
