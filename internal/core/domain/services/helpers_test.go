package services_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/technician"

	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.May, 20, hour, minute, 0, 0, time.UTC)
}

var now = time.Date(2025, time.May, 19, 12, 0, 0, 0, time.UTC)

func mustWindow(t *testing.T, start, end time.Time) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func newTechnician(t *testing.T, id int64, availability ...kernel.TimeWindow) *technician.Technician {
	t.Helper()
	var avs []*technician.Availability
	for _, w := range availability {
		a, err := technician.NewAvailability(w, technician.FullTime)
		require.NoError(t, err)
		avs = append(avs, a)
	}
	tech, err := technician.RestoreTechnician(id, "dni", "tech", technician.StatusActive, nil, avs)
	require.NoError(t, err)
	return tech
}

func newOrder(t *testing.T, id int64, status order.Status, start, end *time.Time, workers ...*order.Worker) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:          id,
		ClientID:    1,
		Status:      status,
		ScheduledAt: start,
		EndAt:       end,
		CreatedAt:   now.Add(-24 * time.Hour),
		UpdatedAt:   now.Add(-time.Hour),
	}, workers)
	require.NoError(t, err)
	return o
}

func newWorker(t *testing.T, technicianID int64, status order.WorkerStatus, responsible bool) *order.Worker {
	t.Helper()
	w, err := order.RestoreWorker(technicianID, status, responsible, now.Add(-time.Hour))
	require.NoError(t, err)
	return w
}

func booking(orderID int64, status order.WorkerStatus, start time.Time, end *time.Time) order.Booking {
	return order.Booking{OrderID: orderID, Status: status, ScheduledAt: &start, EndAt: end}
}

func ptr[T any](v T) *T {
	return &v
}
