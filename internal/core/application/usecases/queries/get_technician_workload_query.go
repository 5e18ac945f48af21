package queries

import (
	"errors"
	"math"
	"time"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrGetTechnicianWorkloadQueryIsNotConstructed = errors.New(
	"GetTechnicianWorkloadQuery must be created via NewGetTechnicianWorkloadQuery constructor",
)

type GetTechnicianWorkloadQuery struct {
	technicianID int64

	guard guard.ConstructorGuard
}

func NewGetTechnicianWorkloadQuery(technicianID int64) (GetTechnicianWorkloadQuery, error) {
	if technicianID <= 0 {
		return GetTechnicianWorkloadQuery{}, errs.NewValueIsOutOfRangeError("technicianID", technicianID,
			1, int64(math.MaxInt64))
	}
	return GetTechnicianWorkloadQuery{technicianID: technicianID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTechnicianWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetTechnicianWorkloadQueryIsNotConstructed)
}

func (q GetTechnicianWorkloadQuery) TechnicianID() int64 {
	return q.technicianID
}

// GetTechnicianWorkloadQueryResponse lists the bookings that count towards Load, the
// same number the scheduler compares against its ceiling.
type GetTechnicianWorkloadQueryResponse struct {
	TechnicianID int64
	Name         string
	Status       string
	Load         int
	Bookings     []WorkloadBookingResponse
}

// WorkloadBookingResponse carries the effective window: EndAt falls back to the
// default order duration. Start and End are nil for undated orders.
type WorkloadBookingResponse struct {
	OrderID int64
	Status  string
	Start   *time.Time
	End     *time.Time
}
