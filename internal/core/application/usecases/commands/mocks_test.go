package commands_test

import (
	"context"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/core/domain/model/visit"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Bookings(ctx context.Context, technicianIDs []int64) (map[int64][]order.Booking, error) {
	args := m.Called(ctx, technicianIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]order.Booking), args.Error(1)
}

type MockTechnicianRepository struct{ mock.Mock }

func (m *MockTechnicianRepository) Add(ctx context.Context, t *technician.Technician) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTechnicianRepository) Update(ctx context.Context, t *technician.Technician) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTechnicianRepository) Get(ctx context.Context, id int64) (*technician.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*technician.Technician), args.Error(1)
}

func (m *MockTechnicianRepository) GetForUpdate(ctx context.Context, id int64) (*technician.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*technician.Technician), args.Error(1)
}

func (m *MockTechnicianRepository) GetAllSchedulable(ctx context.Context) ([]*technician.Technician, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*technician.Technician), args.Error(1)
}

type MockVisitRepository struct{ mock.Mock }

func (m *MockVisitRepository) Add(ctx context.Context, v *visit.Visit) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVisitRepository) Get(ctx context.Context, id int64) (*visit.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visit.Visit), args.Error(1)
}

func (m *MockVisitRepository) CountActive(ctx context.Context, orderID int64) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, notifications ...*notification.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetUnsentForUpdate(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, notifications ...*notification.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockUoW implements every narrowed unit of work of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TechnicianRepository() ports.TechnicianRepository {
	args := m.Called()
	return args.Get(0).(ports.TechnicianRepository)
}

func (m *MockUoW) VisitRepository() ports.VisitRepository {
	args := m.Called()
	return args.Get(0).(ports.VisitRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTechnicianUoWFactory struct{ mock.Mock }

func (m *MockTechnicianUoWFactory) Create() commands.TechnicianUoW {
	args := m.Called()
	return args.Get(0).(commands.TechnicianUoW)
}

type MockVisitUoWFactory struct{ mock.Mock }

func (m *MockVisitUoWFactory) Create() commands.VisitUoW {
	args := m.Called()
	return args.Get(0).(commands.VisitUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
