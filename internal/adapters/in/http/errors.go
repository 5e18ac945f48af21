package http

import (
	"errors"
	"net/http"

	"fieldservice/internal/adapters/in/http/api"
	"fieldservice/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func errorBody(code int, message string) api.Error {
	return api.Error{Code: code, Message: message}
}

// StatusOf maps an error returned by a use case onto an HTTP status code.
func StatusOf(err error) int {
	var (
		httpErr        *echo.HTTPError
		validationErrs validator.ValidationErrors
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &validationErrs),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrSchedulingConflict),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Internal failures are logged and never leak their
// message to the client.
func (s *Server) respondError(c echo.Context, err error) error {
	code := StatusOf(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(code, errorBody(code, http.StatusText(code)))
	}

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	return c.JSON(code, errorBody(code, message))
}
