package queries

import (
	"context"
	"fmt"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// BookingReader is the part of the order repository the workload query reuses, so the
// query and the scheduler agree on what a booking is.
type BookingReader interface {
	Bookings(ctx context.Context, technicianIDs []int64) (map[int64][]order.Booking, error)
}

type GetTechnicianWorkloadQueryHandler struct {
	db       *gorm.DB
	bookings BookingReader
	counter  services.LoadCounter
}

func NewGetTechnicianWorkloadQueryHandler(db *gorm.DB, bookings BookingReader) GetTechnicianWorkloadQueryHandler {
	return GetTechnicianWorkloadQueryHandler{db: db, bookings: bookings, counter: services.NewLoadCounter()}
}

type technicianRow struct {
	ID     int64
	Name   string
	Status string
}

func (h GetTechnicianWorkloadQueryHandler) Handle(
	ctx context.Context,
	query GetTechnicianWorkloadQuery,
) (GetTechnicianWorkloadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTechnicianWorkloadQueryResponse{}, err
	}

	var row technicianRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT id, name, status
		FROM technicians
		WHERE id = ? AND deleted_at IS NULL
	`, query.TechnicianID()).Scan(&row)
	if result.Error != nil {
		return GetTechnicianWorkloadQueryResponse{}, fmt.Errorf("get technician %d: %w",
			query.TechnicianID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return GetTechnicianWorkloadQueryResponse{}, errs.NewObjectNotFoundError("technicianID", query.TechnicianID())
	}

	byTechnician, err := h.bookings.Bookings(ctx, []int64{row.ID})
	if err != nil {
		return GetTechnicianWorkloadQueryResponse{}, err
	}
	bookings := byTechnician[row.ID]

	response := GetTechnicianWorkloadQueryResponse{
		TechnicianID: row.ID,
		Name:         row.Name,
		Status:       row.Status,
		Load:         h.counter.Load(bookings),
		Bookings:     make([]WorkloadBookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		item := WorkloadBookingResponse{OrderID: b.OrderID, Status: b.Status.String()}
		if w, ok := b.Window(); ok {
			start, end := w.Start(), w.End()
			item.Start, item.End = &start, &end
		}
		response.Bookings = append(response.Bookings, item)
	}

	return response, nil
}
