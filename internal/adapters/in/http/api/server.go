package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by the HTTP adapter, one method per operationId.
type ServerInterface interface {
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID int64) error
	// (PATCH /api/v1/orders/{orderId})
	UpdateOrder(ctx echo.Context, orderID int64) error
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderID int64, params DeleteOrderParams) error
	// (POST /api/v1/orders/{orderId}/assignments)
	ScheduleAssignment(ctx echo.Context, orderID int64) error
	// (POST /api/v1/orders/{orderId}/visits)
	RecordVisit(ctx echo.Context, orderID int64) error
	// (PATCH /api/v1/visits/{visitId})
	ReviewVisit(ctx echo.Context, visitID int64) error
	// (DELETE /api/v1/visits/{visitId})
	RemoveVisit(ctx echo.Context, visitID int64) error
	// (POST /api/v1/technicians)
	CreateTechnician(ctx echo.Context) error
	// (POST /api/v1/technicians/{technicianId}/availabilities)
	AddAvailability(ctx echo.Context, technicianID int64) error
	// (GET /api/v1/technicians/{technicianId}/workload)
	GetTechnicianWorkload(ctx echo.Context, technicianID int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func pathID(ctx echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func queryParam(ctx echo.Context, name string, explode, required bool, dest interface{}) error {
	if err := runtime.BindQueryParameter("form", explode, required, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	for _, p := range []struct {
		name    string
		explode bool
		dest    interface{}
	}{
		{"status", true, &params.Status},
		{"technicianId", true, &params.TechnicianID},
		{"clientId", true, &params.ClientID},
		{"from", true, &params.From},
		{"to", true, &params.To},
		{"limit", true, &params.Limit},
		{"offset", true, &params.Offset},
	} {
		if err := queryParam(ctx, p.name, p.explode, false, p.dest); err != nil {
			return err
		}
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	var params DeleteOrderParams
	if err = queryParam(ctx, "expectedUpdatedAt", true, true, &params.ExpectedUpdatedAt); err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderID, params)
}

func (w *ServerInterfaceWrapper) ScheduleAssignment(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ScheduleAssignment(ctx, orderID)
}

func (w *ServerInterfaceWrapper) RecordVisit(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.RecordVisit(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ReviewVisit(ctx echo.Context) error {
	visitID, err := pathID(ctx, "visitId")
	if err != nil {
		return err
	}
	return w.Handler.ReviewVisit(ctx, visitID)
}

func (w *ServerInterfaceWrapper) RemoveVisit(ctx echo.Context) error {
	visitID, err := pathID(ctx, "visitId")
	if err != nil {
		return err
	}
	return w.Handler.RemoveVisit(ctx, visitID)
}

func (w *ServerInterfaceWrapper) CreateTechnician(ctx echo.Context) error {
	return w.Handler.CreateTechnician(ctx)
}

func (w *ServerInterfaceWrapper) AddAvailability(ctx echo.Context) error {
	technicianID, err := pathID(ctx, "technicianId")
	if err != nil {
		return err
	}
	return w.Handler.AddAvailability(ctx, technicianID)
}

func (w *ServerInterfaceWrapper) GetTechnicianWorkload(ctx echo.Context) error {
	technicianID, err := pathID(ctx, "technicianId")
	if err != nil {
		return err
	}
	return w.Handler.GetTechnicianWorkload(ctx, technicianID)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under /api/v1.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "/api/v1")
}

// RegisterHandlersWithBaseURL mounts every operation under baseURL. A group already
// prefixed with /api/v1 passes an empty baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", w.ListOrders)
	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", w.GetOrder)
	router.PATCH(baseURL+"/orders/:orderId", w.UpdateOrder)
	router.DELETE(baseURL+"/orders/:orderId", w.DeleteOrder)
	router.POST(baseURL+"/orders/:orderId/assignments", w.ScheduleAssignment)
	router.POST(baseURL+"/orders/:orderId/visits", w.RecordVisit)
	router.PATCH(baseURL+"/visits/:visitId", w.ReviewVisit)
	router.DELETE(baseURL+"/visits/:visitId", w.RemoveVisit)
	router.POST(baseURL+"/technicians", w.CreateTechnician)
	router.POST(baseURL+"/technicians/:technicianId/availabilities", w.AddAvailability)
	router.GET(baseURL+"/technicians/:technicianId/workload", w.GetTechnicianWorkload)
}
