package jobs_test

import (
	"context"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockAssignmentScheduler struct {
	mock.Mock
}

func (m *MockAssignmentScheduler) Handle(ctx context.Context, cmd commands.ScheduleAssignmentCommand) (order.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.Assignment), args.Error(1)
}

type MockUnassignedOrdersFinder struct {
	mock.Mock
}

func (m *MockUnassignedOrdersFinder) Handle(
	ctx context.Context,
	query queries.GetUnassignedOrdersQuery,
) ([]queries.UnassignedOrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.UnassignedOrderResponse), args.Error(1)
}

type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func forOrder(id int64) interface{} {
	return mock.MatchedBy(func(cmd commands.ScheduleAssignmentCommand) bool {
		return cmd.OrderID() == id
	})
}
