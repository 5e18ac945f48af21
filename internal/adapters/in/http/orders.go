package http

import (
	"net/http"

	"fieldservice/internal/adapters/in/http/api"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context, params api.ListOrdersParams) error {
	filter := queries.OrderFilter{
		TechnicianID: params.TechnicianID,
		ClientID:     params.ClientID,
		From:         params.From,
		To:           params.To,
	}
	if params.Status != nil {
		filter.Statuses = *params.Status
	}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}
	if params.Offset != nil {
		filter.Offset = *params.Offset
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderPage(result))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actorID, err := s.actor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var body api.NewOrder
	if err = s.decode(c, &body); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(body.ClientID, body.ServiceIDs,
		timePtr(body.ScheduledAt), timePtr(body.EndAt), actorID)
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrder(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context, orderID int64) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderDetails(result))
}

// UpdateOrder handles PATCH /api/v1/orders/{orderId}: status, worker set, window and
// services in one guarded write.
func (s *Server) UpdateOrder(c echo.Context, orderID int64) error {
	actorID, err := s.actor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var body api.OrderUpdate
	if err = s.decode(c, &body); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actorID, body.ExpectedUpdatedAt, commands.OrderChange{
		Status:        stringPtr(body.Status),
		WorkerIDs:     body.Workers,
		ResponsibleID: int64Ptr(body.ResponsibleID),
		ScheduledAt:   timePtr(body.ScheduledAt),
		EndAt:         timePtr(body.EndAt),
		ServiceIDs:    body.ServiceIDs,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(o))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(c echo.Context, orderID int64, params api.DeleteOrderParams) error {
	actorID, err := s.actor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, params.ExpectedUpdatedAt, actorID)
	if err != nil {
		return s.respondError(c, err)
	}

	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ScheduleAssignment handles POST /api/v1/orders/{orderId}/assignments.
func (s *Server) ScheduleAssignment(c echo.Context, orderID int64) error {
	cmd, err := commands.NewScheduleAssignmentCommand(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	assignment, err := s.handlers.ScheduleAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toAssignment(assignment))
}
