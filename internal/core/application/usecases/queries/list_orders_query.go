package queries

import (
	"errors"
	"math"
	"time"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrdersQuery. Zero values mean "no filter"; a zero Limit
// falls back to DefaultListLimit.
type OrderFilter struct {
	Statuses     []string
	TechnicianID *int64
	ClientID     *int64
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

type ListOrdersQuery struct {
	statuses     []order.Status
	technicianID *int64
	clientID     *int64
	from         *time.Time
	to           *time.Time
	limit        int
	offset       int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	var errList []error

	statuses := make([]order.Status, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		status, err := order.ParseStatus(s)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		statuses = append(statuses, status)
	}

	if filter.TechnicianID != nil && *filter.TechnicianID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("technicianID", *filter.TechnicianID,
			1, int64(math.MaxInt64)))
	}
	if filter.ClientID != nil && *filter.ClientID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("clientID", *filter.ClientID,
			1, int64(math.MaxInt64)))
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("to",
			errors.New("to must be after from")))
	}

	limit := filter.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, MaxListLimit))
	}
	if filter.Offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", filter.Offset, 0, math.MaxInt32))
	}

	if len(errList) > 0 {
		return ListOrdersQuery{}, errors.Join(errList...)
	}

	return ListOrdersQuery{
		statuses:     statuses,
		technicianID: filter.TechnicianID,
		clientID:     filter.ClientID,
		from:         utc(filter.From),
		to:           utc(filter.To),
		limit:        limit,
		offset:       filter.Offset,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Statuses() []order.Status { return q.statuses }
func (q ListOrdersQuery) TechnicianID() *int64     { return q.technicianID }
func (q ListOrdersQuery) ClientID() *int64         { return q.clientID }
func (q ListOrdersQuery) From() *time.Time         { return q.from }
func (q ListOrdersQuery) To() *time.Time           { return q.to }
func (q ListOrdersQuery) Limit() int               { return q.limit }
func (q ListOrdersQuery) Offset() int              { return q.offset }

type ListOrdersQueryResponse struct {
	Orders []ListedOrderResponse
	Total  int64
}

type ListedOrderResponse struct {
	ID            int64
	ClientID      int64
	ServiceIDs    []int64
	Status        string
	ScheduledAt   *time.Time
	EndAt         *time.Time
	UpdatedAt     time.Time
	ResponsibleID *int64
}
