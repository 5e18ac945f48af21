package commands_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/core/domain/model/visit"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.May, 19, 12, 0, 0, 0, time.UTC)

// observed is the version stamp every restored fixture carries.
var observed = now.Add(-time.Hour)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.May, 20, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func restoreOrder(t *testing.T, id int64, status order.Status, start *time.Time, workers ...*order.Worker) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:          id,
		ClientID:    1,
		Status:      status,
		ScheduledAt: start,
		CreatedAt:   now.Add(-24 * time.Hour),
		UpdatedAt:   observed,
	}, workers)
	require.NoError(t, err)
	return o
}

func restoreWorker(t *testing.T, technicianID int64, status order.WorkerStatus, responsible bool) *order.Worker {
	t.Helper()
	w, err := order.RestoreWorker(technicianID, status, responsible, observed)
	require.NoError(t, err)
	return w
}

func restoreTechnician(t *testing.T, id int64) *technician.Technician {
	t.Helper()
	w, err := kernel.NewTimeWindow(at(6, 0), at(18, 0))
	require.NoError(t, err)
	a, err := technician.RestoreAvailability(id*10, w, technician.FullTime)
	require.NoError(t, err)
	tech, err := technician.RestoreTechnician(id, "dni", "tech", technician.StatusActive, nil,
		[]*technician.Availability{a})
	require.NoError(t, err)
	return tech
}

func restoreVisit(t *testing.T, id, orderID, technicianID int64) *visit.Visit {
	t.Helper()
	v, err := visit.RestoreVisit(visit.Snapshot{
		ID:           id,
		OrderID:      orderID,
		TechnicianID: technicianID,
		StartAt:      at(8, 0),
		EndAt:        at(9, 0),
		CreatedBy:    99,
		UpdatedAt:    observed,
	})
	require.NoError(t, err)
	return v
}

func booking(orderID, technicianID int64, start time.Time) order.Booking {
	return order.Booking{
		OrderID:      orderID,
		TechnicianID: technicianID,
		Status:       order.WorkerAssigned,
		ScheduledAt:  &start,
	}
}
