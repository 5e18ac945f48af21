package http

import (
	"net/http"

	"fieldservice/internal/adapters/in/http/api"
	"fieldservice/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

func (s *Server) RecordVisit(c echo.Context, orderID int64) error {
	actorID, err := s.actor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var body api.NewVisit
	if err = s.decode(c, &body); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRecordVisitCommand(orderID, body.TechnicianID, body.StartAt, body.EndAt, actorID)
	if err != nil {
		return s.respondError(c, err)
	}

	v, err := s.handlers.RecordVisit.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toVisit(v))
}

func (s *Server) ReviewVisit(c echo.Context, visitID int64) error {
	actorID, err := s.actor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var body api.VisitReview
	if err = s.decode(c, &body); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewReviewVisitCommand(visitID, intPtr(body.Evaluation), body.ExpectedUpdatedAt, actorID)
	if err != nil {
		return s.respondError(c, err)
	}

	v, err := s.handlers.ReviewVisit.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toVisit(v))
}

func (s *Server) RemoveVisit(c echo.Context, visitID int64) error {
	actorID, err := s.actor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRemoveVisitCommand(visitID, actorID)
	if err != nil {
		return s.respondError(c, err)
	}

	if err = s.handlers.RemoveVisit.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
