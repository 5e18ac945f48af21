package commands_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orderRepo        *MockOrderRepository
	visitRepo        *MockVisitRepository
	notificationRepo *MockNotificationRepository
	uow              *MockUoW
	factory          *MockUoWFactory
}

func newOrderFixture() orderFixture {
	f := orderFixture{
		orderRepo:        new(MockOrderRepository),
		visitRepo:        new(MockVisitRepository),
		notificationRepo: new(MockNotificationRepository),
		uow:              new(MockUoW),
		factory:          new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f orderFixture) assertExpectations(t *testing.T) {
	f.orderRepo.AssertExpectations(t)
	f.visitRepo.AssertExpectations(t)
	f.notificationRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func kinds(ns []*notification.Notification) map[int64]notification.Kind {
	out := make(map[int64]notification.Kind, len(ns))
	for _, n := range ns {
		out[n.UserID()] = n.Kind()
	}
	return out
}

func TestUpdateOrderCommandHandler_Handle_CompletionCascadesToWorkers(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusInProgress, &start,
		restoreWorker(t, 1, order.WorkerInProgress, true),
		restoreWorker(t, 2, order.WorkerAssigned, false),
		restoreWorker(t, 3, order.WorkerReassigned, false),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{Status: ptr("COMPLETED")})
	require.NoError(t, err)

	var queued []*notification.Notification
	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(1, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("NotificationRepository").Return(f.notificationRepo).Once(),
		f.notificationRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
			queued = args.Get(1).([]*notification.Notification)
		}).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, got.Status())
	for _, id := range []int64{1, 2} {
		w, ok := got.Worker(id)
		require.True(t, ok)
		assert.Equal(t, order.WorkerCompleted, w.Status())
	}
	w3, _ := got.Worker(3)
	assert.Equal(t, order.WorkerReassigned, w3.Status())
	assert.Equal(t, now, got.UpdatedAt())
	assert.Equal(t, int64(99), got.UpdatedBy())
	assert.Equal(t, map[int64]notification.Kind{
		1: notification.KindOrderStatusChanged,
		2: notification.KindOrderStatusChanged,
	}, kinds(queued))
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ReplacesWorkerSet(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusPending, &start,
		restoreWorker(t, 1, order.WorkerAssigned, true),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{
		WorkerIDs:     []int64{2, 3},
		ResponsibleID: ptr(int64(3)),
	})
	require.NoError(t, err)

	var queued []*notification.Notification
	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(0, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("NotificationRepository").Return(f.notificationRepo).Once(),
		f.notificationRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
			queued = args.Get(1).([]*notification.Notification)
		}).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	w1, _ := got.Worker(1)
	assert.Equal(t, order.WorkerReassigned, w1.Status())
	assert.False(t, w1.IsResponsible())
	responsible, ok := got.Responsible()
	require.True(t, ok)
	assert.Equal(t, int64(3), responsible.TechnicianID())
	assert.Equal(t, map[int64]notification.Kind{
		1: notification.KindOrderReassigned,
		2: notification.KindOrderAssigned,
		3: notification.KindOrderAssigned,
	}, kinds(queued))
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ChangesResponsibleWithinWorkerSet(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusPending, &start,
		restoreWorker(t, 1, order.WorkerAssigned, true),
		restoreWorker(t, 2, order.WorkerAssigned, false),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{ResponsibleID: ptr(int64(2))})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(0, nil).Once(),
		f.orderRepo.On("Update", ctx, mock.MatchedBy(func(written *order.Order) bool {
			responsible, ok := written.Responsible()
			return ok && responsible.TechnicianID() == 2 && written.UpdatedBy() == 99
		})).Return(nil).Once(),
		f.uow.On("NotificationRepository").Return(f.notificationRepo).Once(),
		f.notificationRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	w1, _ := got.Worker(1)
	assert.False(t, w1.IsResponsible())
	assert.Equal(t, order.WorkerAssigned, w1.Status())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_RejectsResponsibleOutsideWorkerSet(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusPending, &start,
		restoreWorker(t, 1, order.WorkerAssigned, true),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{ResponsibleID: ptr(int64(7))})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(0, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	responsible, ok := o.Responsible()
	require.True(t, ok)
	assert.Equal(t, int64(1), responsible.TechnicianID())
	assert.Equal(t, observed, o.UpdatedAt())
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_RejectsEmptyUpdateOnTerminalOrder(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusCancelled, &start,
		restoreWorker(t, 1, order.WorkerCancelled, true),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(0, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, observed, o.UpdatedAt())
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_StaleVersion(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusPending, &start)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed.Add(-time.Second),
		commands.OrderChange{Status: ptr("ON_HOLD")})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.Equal(t, order.StatusPending, o.Status())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_RejectsPendingWithVisits(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusOnHold, &start,
		restoreWorker(t, 1, order.WorkerInProgress, true),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{
		Status:    ptr("PENDING"),
		WorkerIDs: []int64{2},
	})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(2, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.StatusOnHold, o.Status())
	assert.Len(t, o.Workers(), 1)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_WriteConflictIsNotCommitted(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusInProgress, &start,
		restoreWorker(t, 1, order.WorkerInProgress, true),
	)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{Status: ptr("FAILED")})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(1, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(errs.NewConcurrencyConflictError("order", 10, observed)).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.uow.AssertNotCalled(t, "NotificationRepository")
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_Reschedules(t *testing.T) {
	ctx := t.Context()
	start := at(8, 0)
	o := restoreOrder(t, 10, order.StatusPending, &start)
	newStart, newEnd := at(13, 0), at(16, 0)
	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{
		ScheduledAt: &newStart,
		EndAt:       &newEnd,
		ServiceIDs:  []int64{4, 5},
	})
	require.NoError(t, err)

	f := newOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, int64(10)).Return(o, nil).Once(),
		f.uow.On("VisitRepository").Return(f.visitRepo).Once(),
		f.visitRepo.On("CountActive", ctx, int64(10)).Return(0, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("NotificationRepository").Return(f.notificationRepo).Once(),
		f.notificationRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(f.factory, fixedClock{now: now})
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	w, err := got.Window()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, w.Duration())
	assert.Equal(t, []int64{4, 5}, got.ServiceIDs())
	f.assertExpectations(t)
}

func TestNewUpdateOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(10, 99, time.Time{}, commands.OrderChange{})
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)

	_, err = commands.NewUpdateOrderCommand(0, 99, observed, commands.OrderChange{})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{Status: ptr("DONE")})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewUpdateOrderCommand(10, 99, observed, commands.OrderChange{WorkerIDs: []int64{}})
	require.NoError(t, err)
	assert.NotNil(t, cmd.WorkerIDs())
	assert.Empty(t, cmd.WorkerIDs())
	_, _, rescheduled := cmd.Schedule()
	assert.False(t, rescheduled)
}
