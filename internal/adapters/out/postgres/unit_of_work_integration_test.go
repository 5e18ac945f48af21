package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/pgtest"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/visit"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var (
	scheduledAt = time.Date(2025, time.May, 20, 8, 0, 0, 0, time.UTC)
	now         = time.Date(2025, time.May, 19, 12, 0, 0, 0, time.UTC)
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(1, []int64{7}, &scheduledAt, nil, now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) seedTechnician(dni string) int64 {
	id, err := suite.pg.SeedTechnician(context.Background(), dni)
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.TechnicianRepository())
	suite.NotNil(uow1.VisitRepository())
	suite.NotNil(uow1.NotificationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitAndRollbackWithoutBegin_ReturnError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChangesAcrossRepositories() {
	ctx := context.Background()
	techID := suite.seedTechnician("T1")
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	_, err := o.AssignWorker(techID, now)
	suite.Require().NoError(err)
	o.Touch(now.Add(time.Second))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))

	n, err := notification.NewNotification(techID, o.ID(), notification.KindOrderAssigned, "t", "m", now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NotificationRepository().Add(ctx, n))

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	unsent, err := suite.factory.Create().NotificationRepository().GetUnsentForUpdate(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(unsent)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsCascadeWithOutbox() {
	ctx := context.Background()
	techA := suite.seedTechnician("A")
	techB := suite.seedTechnician("B")

	seed := suite.factory.Create()
	o := suite.newOrder()
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	w, err := kernel.NewTimeWindow(scheduledAt, scheduledAt.Add(time.Hour))
	suite.Require().NoError(err)
	v, err := visit.NewVisit(locked.ID(), techA, w, 99, now)
	suite.Require().NoError(err)

	_, err = locked.ReconcileWorkers([]int64{techA, techB}, &techA, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.VisitRepository().Add(ctx, v))

	outcome := services.NewOrderStatusMachine().VisitRecorded(locked, 0, now.Add(time.Minute))
	suite.Equal(order.StatusInProgress, outcome.Status)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.NotificationRepository().Add(ctx, outcome.Notifications...))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusInProgress, got.Status())
	suite.Len(got.ActiveWorkers(), 2)

	count, err := suite.factory.Create().VisitRepository().CountActive(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStaleWriteInsideTransaction_RollsBackEarlierWrites() {
	ctx := context.Background()
	techID := suite.seedTechnician("T1")
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	stale, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	fresh, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	fresh.Touch(now.Add(time.Minute))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, fresh))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	n, err := notification.NewNotification(techID, o.ID(), notification.KindOrderAssigned, "t", "m", now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NotificationRepository().Add(ctx, n))

	_, err = stale.AssignWorker(techID, now)
	suite.Require().NoError(err)
	stale.Touch(now.Add(2 * time.Minute))
	err = uow.OrderRepository().Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
	suite.Require().NoError(uow.Rollback(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Empty(got.Workers())

	unsent, err := suite.factory.Create().NotificationRepository().GetUnsentForUpdate(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(unsent)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedWritesInvisible() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	o1 := suite.newOrder()
	o2 := suite.newOrder()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, o1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, o2))

	_, err := uow1.OrderRepository().Get(ctx, o2.ID())
	suite.Require().Error(err)
	_, err = uow2.OrderRepository().Get(ctx, o1.ID())
	suite.Require().Error(err)

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o1.ID())
	suite.Require().NoError(err)
	_, err = suite.factory.Create().OrderRepository().Get(ctx, o2.ID())
	suite.Require().Error(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
