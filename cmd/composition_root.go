package cmd

import (
	"fieldservice/internal/adapters/in/http"
	"fieldservice/internal/adapters/out/clock"
	"fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/orderrepo"
	"fieldservice/internal/adapters/out/publisher"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/jobs"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	scheduler  services.AssignmentScheduler
	clock      ports.Clock
	publisher  ports.NotificationPublisher
	logger     *zap.Logger
}

// NewCompositionRoot wires the adapters. A nil redisClient makes notifications go to the
// log instead of Redis.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) (*CompositionRoot, error) {
	scheduler, err := services.NewAssignmentScheduler(config.Scheduler.MaxLoad)
	if err != nil {
		return nil, err
	}

	var notificationPublisher ports.NotificationPublisher = publisher.NewLogPublisher(logger)
	if redisClient != nil {
		notificationPublisher = publisher.NewRedisPublisher(redisClient, publisher.DefaultChannelPrefix)
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		scheduler:  scheduler,
		clock:      clock.NewSystemClock(),
		publisher:  notificationPublisher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateScheduleAssignmentCommandHandler() commands.ScheduleAssignmentCommandHandler {
	return commands.NewScheduleAssignmentCommandHandler(c.uow(), c.scheduler, c.clock)
}

func (c *CompositionRoot) CreateRecordVisitCommandHandler() commands.RecordVisitCommandHandler {
	return commands.NewRecordVisitCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateReviewVisitCommandHandler() commands.ReviewVisitCommandHandler {
	var f commands.VisitUoWFactory = FuncVisitUoWFactory(func() commands.VisitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewVisitCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRemoveVisitCommandHandler() commands.RemoveVisitCommandHandler {
	return commands.NewRemoveVisitCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateCreateTechnicianCommandHandler() commands.CreateTechnicianCommandHandler {
	return commands.NewCreateTechnicianCommandHandler(c.technicianUoW())
}

func (c *CompositionRoot) CreateAddAvailabilityCommandHandler() commands.AddAvailabilityCommandHandler {
	return commands.NewAddAvailabilityCommandHandler(c.technicianUoW())
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTechnicianWorkloadQueryHandler() queries.GetTechnicianWorkloadQueryHandler {
	return queries.NewGetTechnicianWorkloadQueryHandler(c.gormDB, orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		UpdateOrder:           c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:           c.CreateDeleteOrderCommandHandler(),
		ScheduleAssignment:    c.CreateScheduleAssignmentCommandHandler(),
		RecordVisit:           c.CreateRecordVisitCommandHandler(),
		ReviewVisit:           c.CreateReviewVisitCommandHandler(),
		RemoveVisit:           c.CreateRemoveVisitCommandHandler(),
		CreateTechnician:      c.CreateCreateTechnicianCommandHandler(),
		AddAvailability:       c.CreateAddAvailabilityCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetTechnicianWorkload: c.CreateGetTechnicianWorkloadQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return http.NewRouter(c.CreateHTTPServer(), http.RouterConfig{JWTSecret: c.config.JWTSecret}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	autoAssignment := jobs.NewAutoAssignmentJob(
		c.CreateScheduleAssignmentCommandHandler(),
		c.CreateGetUnassignedOrdersQueryHandler(),
		c.clock,
		c.config.Scheduler.AutoAssignSchedule,
		c.config.Scheduler.AutoAssignBatchSize,
		c.logger,
	)
	notificationDispatch := jobs.NewNotificationDispatchJob(
		c.CreateDispatchNotificationsCommandHandler(),
		c.config.Scheduler.NotificationDispatchSchedule,
		c.config.Scheduler.NotificationBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(autoAssignment, notificationDispatch, c.logger)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) technicianUoW() commands.TechnicianUoWFactory {
	return FuncTechnicianUoWFactory(func() commands.TechnicianUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTechnicianUoWFactory func() commands.TechnicianUoW

func (f FuncTechnicianUoWFactory) Create() commands.TechnicianUoW {
	return f()
}

type FuncVisitUoWFactory func() commands.VisitUoW

func (f FuncVisitUoWFactory) Create() commands.VisitUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
