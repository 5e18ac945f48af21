package queries_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name  string
		query interface{ Validate() error }
		want  error
	}{
		{"get order", queries.GetOrderQuery{}, queries.ErrGetOrderQueryIsNotConstructed},
		{"list orders", queries.ListOrdersQuery{}, queries.ErrListOrdersQueryIsNotConstructed},
		{"workload", queries.GetTechnicianWorkloadQuery{}, queries.ErrGetTechnicianWorkloadQueryIsNotConstructed},
		{"unassigned", queries.GetUnassignedOrdersQuery{}, queries.ErrGetUnassignedOrdersQueryIsNotConstructed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.query.Validate(), tt.want)
		})
	}
}

func TestNewGetOrderQuery_NonPositiveID_ReturnsOutOfRange(t *testing.T) {
	_, err := queries.NewGetOrderQuery(0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetTechnicianWorkloadQuery_NonPositiveID_ReturnsOutOfRange(t *testing.T) {
	_, err := queries.NewGetTechnicianWorkloadQuery(-1)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewListOrdersQuery_Defaults(t *testing.T) {
	query, err := queries.NewListOrdersQuery(queries.OrderFilter{})

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, queries.DefaultListLimit, query.Limit())
	assert.Zero(t, query.Offset())
	assert.Empty(t, query.Statuses())
}

func TestNewListOrdersQuery_ParsesStatusesAndNormalizesDates(t *testing.T) {
	from := time.Date(2025, time.May, 20, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))

	query, err := queries.NewListOrdersQuery(queries.OrderFilter{
		Statuses: []string{"PENDING", "ON_HOLD"},
		From:     &from,
	})

	require.NoError(t, err)
	assert.Equal(t, []order.Status{order.StatusPending, order.StatusOnHold}, query.Statuses())
	require.NotNil(t, query.From())
	assert.Equal(t, time.UTC, query.From().Location())
	assert.True(t, query.From().Equal(from))
}

func TestNewListOrdersQuery_Invalid(t *testing.T) {
	from := time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter queries.OrderFilter
		want   error
	}{
		{"unknown status", queries.OrderFilter{Statuses: []string{"DONE"}}, errs.ErrValueIsInvalid},
		{"technician", queries.OrderFilter{TechnicianID: ptr(int64(0))}, errs.ErrValueIsOutOfRange},
		{"client", queries.OrderFilter{ClientID: ptr(int64(-3))}, errs.ErrValueIsOutOfRange},
		{"empty range", queries.OrderFilter{From: &from, To: &from}, errs.ErrValueIsInvalid},
		{"limit too large", queries.OrderFilter{Limit: queries.MaxListLimit + 1}, errs.ErrValueIsOutOfRange},
		{"negative limit", queries.OrderFilter{Limit: -1}, errs.ErrValueIsOutOfRange},
		{"negative offset", queries.OrderFilter{Offset: -1}, errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewListOrdersQuery(tt.filter)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewGetUnassignedOrdersQuery(t *testing.T) {
	now := time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)

	query, err := queries.NewGetUnassignedOrdersQuery(now, 25)
	require.NoError(t, err)
	assert.Equal(t, now, query.Now())
	assert.Equal(t, 25, query.Limit())

	_, err = queries.NewGetUnassignedOrdersQuery(time.Time{}, 0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
