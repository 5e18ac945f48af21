package http

import (
	"context"

	"fieldservice/internal/adapters/in/http/api"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/core/domain/model/visit"

	"go.uber.org/zap"
)

// UseCase is a command or query handler that produces a result.
type UseCase[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Action is a command handler without a result.
type Action[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers lists the use cases served over HTTP.
type Handlers struct {
	CreateOrder        UseCase[commands.CreateOrderCommand, *order.Order]
	UpdateOrder        UseCase[commands.UpdateOrderCommand, *order.Order]
	DeleteOrder        Action[commands.DeleteOrderCommand]
	ScheduleAssignment UseCase[commands.ScheduleAssignmentCommand, order.Assignment]
	RecordVisit        UseCase[commands.RecordVisitCommand, *visit.Visit]
	ReviewVisit        UseCase[commands.ReviewVisitCommand, *visit.Visit]
	RemoveVisit        Action[commands.RemoveVisitCommand]
	CreateTechnician   UseCase[commands.CreateTechnicianCommand, *technician.Technician]
	AddAvailability    UseCase[commands.AddAvailabilityCommand, *technician.Availability]

	GetOrder              UseCase[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	ListOrders            UseCase[queries.ListOrdersQuery, queries.ListOrdersQueryResponse]
	GetTechnicianWorkload UseCase[queries.GetTechnicianWorkloadQuery, queries.GetTechnicianWorkloadQueryResponse]
}

// Server implements api.ServerInterface on top of the use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http")),
	}
}
