package queries

import (
	"errors"
	"math"
	"time"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one non-deleted order with its worker rows.
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsOutOfRangeError("orderID", orderID, 1, int64(math.MaxInt64))
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderQueryResponse is the order as shown to an operator. UpdatedAt is the version
// stamp clients send back as expectedUpdatedAt; UpdatedBy is zero after a system write.
type GetOrderQueryResponse struct {
	ID           int64
	ClientID     int64
	ServiceIDs   []int64
	Status       string
	ScheduledAt  *time.Time
	EndAt        *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UpdatedBy    int64
	ActiveVisits int
	Workers      []OrderWorkerResponse
}

type OrderWorkerResponse struct {
	TechnicianID  int64
	Name          string
	Status        string
	IsResponsible bool
	AssignedAt    time.Time
}
