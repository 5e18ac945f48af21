package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) decode(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(dst)
}

func (s *Server) actor(c echo.Context) (int64, error) {
	id, ok := ActorID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
