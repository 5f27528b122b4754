package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/auth"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// errorBody is the payload of every failed request.
type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes and client messages.
func statusFor(err error) (int, string) {
	var (
		bindErr  *echo.BindingError
		httpErr  *echo.HTTPError
		valErrs  validator.ValidationErrors
		paramErr *stats.ParamError
	)
	switch {
	case errors.As(err, &bindErr):
		return http.StatusBadRequest, fmt.Sprintf("invalid parameter %s: %v", bindErr.Field, bindErr.Message)
	case errors.As(err, &valErrs):
		return http.StatusBadRequest, validationMessage(valErrs)
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.As(err, &paramErr):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, session.ErrNotFound):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, analysis.ErrColumnNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, analysis.ErrColumnNotNumeric),
		errors.Is(err, analysis.ErrBadPayload):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrNoDataset):
		return http.StatusConflict, err.Error()
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, dataset.ErrNoColumns),
		errors.Is(err, stats.ErrEmptySample),
		errors.Is(err, stats.ErrInsufficientData),
		errors.Is(err, stats.ErrZeroVariance):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.log.Error("unhandled error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorBody{Error: msg})
	}
	if err != nil {
		s.log.Error("write error response", zap.Error(err))
	}
}
