package http

import (
	"time"

	"fieldservice/internal/adapters/in/http/api"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/core/domain/model/visit"

	"github.com/aarondl/null/v8"
)

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func stringPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func int64Ptr(i null.Int64) *int64 {
	if !i.Valid {
		return nil
	}
	return &i.Int64
}

func intPtr(i null.Int) *int {
	if !i.Valid {
		return nil
	}
	return &i.Int
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func toOrder(o *order.Order) api.Order {
	workers := make([]api.Worker, 0, len(o.Workers()))
	for _, w := range o.Workers() {
		workers = append(workers, api.Worker{
			TechnicianID:  w.TechnicianID(),
			Status:        w.Status().String(),
			IsResponsible: w.IsResponsible(),
			AssignedAt:    w.CreatedAt(),
		})
	}

	return api.Order{
		ID:          o.ID(),
		ClientID:    o.ClientID(),
		ServiceIDs:  nonNil(o.ServiceIDs()),
		Status:      o.Status().String(),
		ScheduledAt: o.ScheduledAt(),
		EndAt:       o.EndAt(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		UpdatedBy:   o.UpdatedBy(),
		Workers:     workers,
	}
}

func toOrderDetails(r queries.GetOrderQueryResponse) api.OrderDetails {
	workers := make([]api.Worker, 0, len(r.Workers))
	for _, w := range r.Workers {
		workers = append(workers, api.Worker{
			TechnicianID:  w.TechnicianID,
			Name:          w.Name,
			Status:        w.Status,
			IsResponsible: w.IsResponsible,
			AssignedAt:    w.AssignedAt,
		})
	}

	return api.OrderDetails{
		Order: api.Order{
			ID:          r.ID,
			ClientID:    r.ClientID,
			ServiceIDs:  nonNil(r.ServiceIDs),
			Status:      r.Status,
			ScheduledAt: r.ScheduledAt,
			EndAt:       r.EndAt,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			UpdatedBy:   r.UpdatedBy,
			Workers:     workers,
		},
		ActiveVisits: r.ActiveVisits,
	}
}

func toOrderPage(r queries.ListOrdersQueryResponse) api.OrderPage {
	items := make([]api.OrderSummary, 0, len(r.Orders))
	for _, o := range r.Orders {
		items = append(items, api.OrderSummary{
			ID:            o.ID,
			ClientID:      o.ClientID,
			ServiceIDs:    nonNil(o.ServiceIDs),
			Status:        o.Status,
			ScheduledAt:   o.ScheduledAt,
			EndAt:         o.EndAt,
			UpdatedAt:     o.UpdatedAt,
			ResponsibleID: o.ResponsibleID,
		})
	}
	return api.OrderPage{Items: items, Total: r.Total}
}

func toAssignment(a order.Assignment) api.Assignment {
	return api.Assignment{
		OrderID:      a.OrderID,
		TechnicianID: a.TechnicianID,
		Status:       a.Status.String(),
		AssignedAt:   a.AssignedAt,
	}
}

func toVisit(v *visit.Visit) api.Visit {
	return api.Visit{
		ID:           v.ID(),
		OrderID:      v.OrderID(),
		TechnicianID: v.TechnicianID(),
		StartAt:      v.Window().Start(),
		EndAt:        v.Window().End(),
		IsReviewed:   v.IsReviewed(),
		Evaluation:   v.Evaluation(),
		CreatedBy:    v.CreatedBy(),
		UpdatedAt:    v.UpdatedAt(),
		UpdatedBy:    v.UpdatedBy(),
	}
}

func toTechnician(t *technician.Technician) api.Technician {
	return api.Technician{
		ID:     t.ID(),
		DNI:    t.DNI(),
		Name:   t.Name(),
		Status: t.Status().String(),
	}
}

func toAvailability(a *technician.Availability) api.Availability {
	return api.Availability{
		ID:      a.ID(),
		StartAt: a.Window().Start(),
		EndAt:   a.Window().End(),
		Type:    string(a.Type()),
	}
}

func toWorkload(r queries.GetTechnicianWorkloadQueryResponse) api.Workload {
	bookings := make([]api.WorkloadBooking, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		bookings = append(bookings, api.WorkloadBooking{
			OrderID: b.OrderID,
			Status:  b.Status,
			Start:   b.Start,
			End:     b.End,
		})
	}
	return api.Workload{
		TechnicianID: r.TechnicianID,
		Name:         r.Name,
		Status:       r.Status,
		Load:         r.Load,
		Bookings:     bookings,
	}
}
