package queries

import (
	"errors"
	"time"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
	"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
)

// GetUnassignedOrdersQuery selects PENDING orders scheduled after now that have no
// ASSIGNED or IN_PROGRESS worker.
type GetUnassignedOrdersQuery struct {
	now   time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewGetUnassignedOrdersQuery(now time.Time, limit int) (GetUnassignedOrdersQuery, error) {
	var errList []error
	if now.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("now"))
	}
	if limit < 1 || limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if len(errList) > 0 {
		return GetUnassignedOrdersQuery{}, errors.Join(errList...)
	}

	return GetUnassignedOrdersQuery{now: now.UTC(), limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

func (q GetUnassignedOrdersQuery) Now() time.Time { return q.now }
func (q GetUnassignedOrdersQuery) Limit() int     { return q.limit }

type UnassignedOrderResponse struct {
	ID          int64
	ScheduledAt time.Time
	EndAt       *time.Time
}
