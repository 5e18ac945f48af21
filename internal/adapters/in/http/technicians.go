package http

import (
	"net/http"

	"fieldservice/internal/adapters/in/http/api"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateTechnician(c echo.Context) error {
	var body api.NewTechnician
	if err := s.decode(c, &body); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCreateTechnicianCommand(body.DNI, body.Name)
	if err != nil {
		return s.respondError(c, err)
	}

	t, err := s.handlers.CreateTechnician.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toTechnician(t))
}

func (s *Server) AddAvailability(c echo.Context, technicianID int64) error {
	var body api.NewAvailability
	if err := s.decode(c, &body); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewAddAvailabilityCommand(technicianID, body.StartAt, body.EndAt, body.Type)
	if err != nil {
		return s.respondError(c, err)
	}

	a, err := s.handlers.AddAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toAvailability(a))
}

func (s *Server) GetTechnicianWorkload(c echo.Context, technicianID int64) error {
	query, err := queries.NewGetTechnicianWorkloadQuery(technicianID)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.GetTechnicianWorkload.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toWorkload(result))
}
